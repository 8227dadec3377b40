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

type MenuHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewMenuHandler(db *sql.DB, cfg cliparse.Config) *MenuHandler {
	return &MenuHandler{db: db, cfg: cfg, now: time.Now}
}

// menuItems loads the items of one menu ordered by name.
func menuItems(db *sql.DB, menuID string) ([]models.MenuItem, error) {
	rows, err := db.Query(`
		SELECT id, menu_id, name, price
		FROM menu_item
		WHERE menu_id = $1
		ORDER BY name_normalized
	`, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.MenuID, &item.Name, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h *MenuHandler) getMenu(w http.ResponseWriter, restaurantID, date string) {
	var menu models.Menu
	err := h.db.QueryRow(`
		SELECT id, restaurant_id, menu_date FROM menu
		WHERE restaurant_id = $1 AND menu_date = $2
	`, restaurantID, date).Scan(&menu.ID, &menu.RestaurantID, &menu.Date)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Menu for date "+date+" not found")
		return
	}
	if err != nil {
		slog.Error("failed to query menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	menu.Items, err = menuItems(h.db, menu.ID)
	if err != nil {
		slog.Error("failed to query menu items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, menu)
}

// GetActual handles GET /api/admin/restaurants/{restaurantId}/menu/actual
func (h *MenuHandler) GetActual(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	h.getMenu(w, restaurantID, h.now().Format(models.DateLayout))
}

// GetByDate handles GET /api/admin/restaurants/{restaurantId}/menu/by-date?date=YYYY-MM-DD
func (h *MenuHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	h.getMenu(w, restaurantID, date)
}

// replaceMenu writes the menu for (restaurantID, date) with exactly the
// given item set. An existing menu keeps its id but every prior item is
// discarded; all or nothing.
func (h *MenuHandler) replaceMenu(restaurantID, date string, items []models.MenuItemRequest) (models.Menu, bool, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return models.Menu{}, false, err
	}
	defer tx.Rollback()

	var menuID string
	err = tx.QueryRow(`
		SELECT id FROM menu WHERE restaurant_id = $1 AND menu_date = $2
	`, restaurantID, date).Scan(&menuID)

	created := false
	if err == sql.ErrNoRows {
		menuID = auth.NewID()
		if _, err := tx.Exec(`
			INSERT INTO menu (id, restaurant_id, menu_date)
			VALUES ($1, $2, $3)
		`, menuID, restaurantID, date); err != nil {
			return models.Menu{}, false, err
		}
		created = true
	} else if err != nil {
		return models.Menu{}, false, err
	} else {
		if _, err := tx.Exec(`DELETE FROM menu_item WHERE menu_id = $1`, menuID); err != nil {
			return models.Menu{}, false, err
		}
	}

	menu := models.Menu{ID: menuID, RestaurantID: restaurantID, Date: date}
	for _, item := range items {
		itemID := auth.NewID()
		if _, err := tx.Exec(`
			INSERT INTO menu_item (id, menu_id, name, name_normalized, price)
			VALUES ($1, $2, $3, $4, $5)
		`, itemID, menuID, item.Name, validate.Normalize(item.Name), item.Price); err != nil {
			return models.Menu{}, false, err
		}
		menu.Items = append(menu.Items, models.MenuItem{
			ID:     itemID,
			MenuID: menuID,
			Name:   item.Name,
			Price:  item.Price,
		})
	}

	if err := tx.Commit(); err != nil {
		return models.Menu{}, false, err
	}
	return menu, created, nil
}

// CreateOrReplace handles POST /api/admin/restaurants/{restaurantId}/menu.
// Creates today's menu, or atomically replaces the item set of an
// existing one.
func (h *MenuHandler) CreateOrReplace(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	var req models.MenuRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckItemSet(req.Items); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Duplicate item name in menu")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := restaurantExists(h.db, restaurantID)
	if err != nil {
		slog.Error("failed to check restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
		return
	}

	today := h.now().Format(models.DateLayout)
	menu, created, err := h.replaceMenu(restaurantID, today, req.Items)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Duplicate item name in menu")
			return
		}
		if dbx.IsForeignKeyViolation(err) {
			// Restaurant deleted between the existence check and the write
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
			return
		}
		slog.Error("failed to write menu", "error", err, "restaurant_id", restaurantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save menu")
		return
	}

	slog.Info("menu saved", "restaurant_id", restaurantID, "menu_id", menu.ID, "date", today, "created", created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, menu)
}

// UpdateActual handles PUT /api/admin/restaurants/{restaurantId}/menu/actual.
// Same replace semantics as CreateOrReplace but requires the menu to exist.
func (h *MenuHandler) UpdateActual(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	var req models.MenuRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckItemSet(req.Items); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Duplicate item name in menu")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	today := h.now().Format(models.DateLayout)
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM menu WHERE restaurant_id = $1 AND menu_date = $2)
	`, restaurantID, today).Scan(&exists)
	if err != nil {
		slog.Error("failed to check menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Actual menu not found")
		return
	}

	menu, _, err := h.replaceMenu(restaurantID, today, req.Items)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Duplicate item name in menu")
			return
		}
		if dbx.IsForeignKeyViolation(err) {
			// Restaurant deleted between the existence check and the write
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
			return
		}
		slog.Error("failed to write menu", "error", err, "restaurant_id", restaurantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save menu")
		return
	}

	slog.Info("menu replaced", "restaurant_id", restaurantID, "menu_id", menu.ID, "date", today)

	middleware.JSONResponse(w, http.StatusOK, menu)
}

// DeleteActual handles DELETE /api/admin/restaurants/{restaurantId}/menu/actual.
// The cascade is explicit: items first, then the menu, in one transaction.
func (h *MenuHandler) DeleteActual(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	today := h.now().Format(models.DateLayout)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var menuID string
	err = tx.QueryRow(`
		SELECT id FROM menu WHERE restaurant_id = $1 AND menu_date = $2
	`, restaurantID, today).Scan(&menuID)

	if err == sql.ErrNoRows {
		// Nothing matched is a distinct, client-visible outcome
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Actual menu not found")
		return
	}
	if err != nil {
		slog.Error("failed to query menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := tx.Exec(`DELETE FROM menu_item WHERE menu_id = $1`, menuID); err != nil {
		slog.Error("failed to delete menu items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete menu")
		return
	}
	if _, err := tx.Exec(`DELETE FROM menu WHERE id = $1`, menuID); err != nil {
		slog.Error("failed to delete menu", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete menu")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit menu delete", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete menu")
		return
	}

	slog.Info("menu deleted", "restaurant_id", restaurantID, "menu_id", menuID, "date", today)

	w.WriteHeader(http.StatusNoContent)
}
