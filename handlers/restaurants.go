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

type RestaurantHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewRestaurantHandler(db *sql.DB, cfg cliparse.Config) *RestaurantHandler {
	return &RestaurantHandler{db: db, cfg: cfg, now: time.Now}
}

// restaurantExists reports whether a restaurant row exists. Shared by the
// dish and menu handlers for reference checks.
func restaurantExists(db *sql.DB, id string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM restaurant WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

// Create handles POST /api/admin/restaurants
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RestaurantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckName(req.Name); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validate.RestaurantNameIsFree(h.db, req.Name, ""); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Restaurant name already in use")
			return
		}
		slog.Error("failed to check restaurant name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	id := auth.NewID()
	createdAt := h.now().UTC().Format(time.RFC3339)
	_, err := h.db.Exec(`
		INSERT INTO restaurant (id, name, name_normalized, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, req.Name, validate.Normalize(req.Name), createdAt)

	if err != nil {
		// A concurrent create with the same name can slip past the check
		// above; the unique index catches it
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Restaurant name already in use")
			return
		}
		slog.Error("failed to insert restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}

	slog.Info("restaurant created", "restaurant_id", id, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.Restaurant{
		ID:        id,
		Name:      req.Name,
		CreatedAt: createdAt,
	})
}

// Update handles PUT /api/admin/restaurants/{id} (name-only update)
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.RestaurantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.CheckName(req.Name); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var createdAt string
	err := h.db.QueryRow(`
		SELECT created_at FROM restaurant WHERE id = $1
	`, id).Scan(&createdAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
		return
	}
	if err != nil {
		slog.Error("failed to query restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The restaurant being edited is excluded, so keeping its own name is
	// not a duplicate
	if err := validate.RestaurantNameIsFree(h.db, req.Name, id); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Restaurant name already in use")
			return
		}
		slog.Error("failed to check restaurant name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		UPDATE restaurant SET name = $1, name_normalized = $2 WHERE id = $3
	`, req.Name, validate.Normalize(req.Name), id)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Restaurant name already in use")
			return
		}
		slog.Error("failed to update restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}

	slog.Info("restaurant updated", "restaurant_id", id, "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.Restaurant{
		ID:        id,
		Name:      req.Name,
		CreatedAt: createdAt,
	})
}

// Get handles GET /api/admin/restaurants/{id}
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var rest models.Restaurant
	err := h.db.QueryRow(`
		SELECT id, name, created_at FROM restaurant WHERE id = $1
	`, id).Scan(&rest.ID, &rest.Name, &rest.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
		return
	}
	if err != nil {
		slog.Error("failed to query restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rest)
}

// List handles GET /api/admin/restaurants
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, created_at FROM restaurant ORDER BY name_normalized
	`)
	if err != nil {
		slog.Error("failed to query restaurants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		var rest models.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.CreatedAt); err != nil {
			slog.Error("failed to scan restaurant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		restaurants = append(restaurants, rest)
	}

	middleware.JSONResponse(w, http.StatusOK, restaurants)
}

// Delete handles DELETE /api/admin/restaurants/{id}
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM restaurant WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete restaurant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete restaurant")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete restaurant")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
		return
	}

	slog.Info("restaurant deleted", "restaurant_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// ListWithActualMenus handles GET /api/restaurants - the ballot view:
// every restaurant offering a menu today, with its items.
func (h *RestaurantHandler) ListWithActualMenus(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(models.DateLayout)

	rows, err := h.db.Query(`
		SELECT r.id, r.name, r.created_at, m.id, m.menu_date
		FROM restaurant r
		JOIN menu m ON m.restaurant_id = r.id
		WHERE m.menu_date = $1
		ORDER BY r.name_normalized
	`, today)
	if err != nil {
		slog.Error("failed to query restaurants with menus", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	result := []models.RestaurantWithMenu{}
	for rows.Next() {
		var entry models.RestaurantWithMenu
		if err := rows.Scan(
			&entry.Restaurant.ID, &entry.Restaurant.Name, &entry.Restaurant.CreatedAt,
			&entry.Menu.ID, &entry.Menu.Date,
		); err != nil {
			slog.Error("failed to scan restaurant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		entry.Menu.RestaurantID = entry.Restaurant.ID
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate restaurants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range result {
		items, err := menuItems(h.db, result[i].Menu.ID)
		if err != nil {
			slog.Error("failed to query menu items", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		result[i].Menu.Items = items
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
