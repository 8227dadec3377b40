// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/lunchvote/auth"
	"github.com/danielhkuo/lunchvote/cliparse"
	dbx "github.com/danielhkuo/lunchvote/db"
	"github.com/danielhkuo/lunchvote/middleware"
	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/validate"
)

// MenuItemHandler operates on the restaurant's active (today's) menu
// only; item operations outside that date window do not exist in the API.
type MenuItemHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewMenuItemHandler(db *sql.DB, cfg cliparse.Config) *MenuItemHandler {
	return &MenuItemHandler{db: db, cfg: cfg, now: time.Now}
}

// activeMenuID resolves the restaurant's menu for today. sql.ErrNoRows
// means no active menu.
func (h *MenuItemHandler) activeMenuID(restaurantID string) (string, error) {
	var menuID string
	err := h.db.QueryRow(`
		SELECT id FROM menu WHERE restaurant_id = $1 AND menu_date = $2
	`, restaurantID, h.now().Format(models.DateLayout)).Scan(&menuID)
	return menuID, err
}

// Get handles GET /api/admin/restaurants/{restaurantId}/menu/items/{id}
func (h *MenuItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	itemID := r.PathValue("id")
	if restaurantID == "" || itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	menuID, err := h.activeMenuID(restaurantID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant has no actual menu")
		return
	}
	if err != nil {
		slog.Error("failed to query active menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var item models.MenuItem
	err = h.db.QueryRow(`
		SELECT id, menu_id, name, price FROM menu_item
		WHERE id = $1 AND menu_id = $2
	`, itemID, menuID).Scan(&item.ID, &item.MenuID, &item.Name, &item.Price)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Menu item not found in actual menu")
		return
	}
	if err != nil {
		slog.Error("failed to query menu item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}

// Create handles POST /api/admin/restaurants/{restaurantId}/menu/items
func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	var req models.MenuItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckName(req.Name); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.CheckPrice(req.Price); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	menuID, err := h.activeMenuID(restaurantID)
	if err == sql.ErrNoRows {
		// Creating an item requires an existing active menu to attach to
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant has no actual menu")
		return
	}
	if err != nil {
		slog.Error("failed to query active menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := validate.MenuItemNameIsFree(h.db, menuID, req.Name, ""); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Menu item name already in use")
			return
		}
		slog.Error("failed to check menu item name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	itemID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO menu_item (id, menu_id, name, name_normalized, price)
		VALUES ($1, $2, $3, $4, $5)
	`, itemID, menuID, req.Name, validate.Normalize(req.Name), req.Price)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Menu item name already in use")
			return
		}
		slog.Error("failed to insert menu item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create menu item")
		return
	}

	slog.Info("menu item created", "menu_id", menuID, "item_id", itemID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.MenuItem{
		ID:     itemID,
		MenuID: menuID,
		Name:   req.Name,
		Price:  req.Price,
	})
}

// Update handles PUT /api/admin/restaurants/{restaurantId}/menu/items/{id}
func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	itemID := r.PathValue("id")
	if restaurantID == "" || itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	var req models.MenuItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckName(req.Name); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.CheckPrice(req.Price); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	menuID, err := h.activeMenuID(restaurantID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant has no actual menu")
		return
	}
	if err != nil {
		slog.Error("failed to query active menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var exists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM menu_item WHERE id = $1 AND menu_id = $2)
	`, itemID, menuID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check menu item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Menu item not found in actual menu")
		return
	}

	// The path id names the item being edited, so keeping its own name
	// (e.g. a price-only change) is not a duplicate
	if err := validate.MenuItemNameIsFree(h.db, menuID, req.Name, itemID); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Menu item name already in use")
			return
		}
		slog.Error("failed to check menu item name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		UPDATE menu_item SET name = $1, name_normalized = $2, price = $3
		WHERE id = $4 AND menu_id = $5
	`, req.Name, validate.Normalize(req.Name), req.Price, itemID, menuID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Menu item name already in use")
			return
		}
		slog.Error("failed to update menu item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	slog.Info("menu item updated", "menu_id", menuID, "item_id", itemID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.MenuItem{
		ID:     itemID,
		MenuID: menuID,
		Name:   req.Name,
		Price:  req.Price,
	})
}

// Delete handles DELETE /api/admin/restaurants/{restaurantId}/menu/items/{id}
func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	itemID := r.PathValue("id")
	if restaurantID == "" || itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	menuID, err := h.activeMenuID(restaurantID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant has no actual menu")
		return
	}
	if err != nil {
		slog.Error("failed to query active menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM menu_item WHERE id = $1 AND menu_id = $2
	`, itemID, menuID)
	if err != nil {
		slog.Error("failed to delete menu item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Menu item not found in actual menu")
		return
	}

	slog.Info("menu item deleted", "menu_id", menuID, "item_id", itemID)

	w.WriteHeader(http.StatusNoContent)
}
