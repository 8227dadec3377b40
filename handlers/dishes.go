// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lunchvote/auth"
	"github.com/danielhkuo/lunchvote/cliparse"
	dbx "github.com/danielhkuo/lunchvote/db"
	"github.com/danielhkuo/lunchvote/middleware"
	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/validate"
)

// DishHandler manages the per-restaurant reference dishes administrators
// seed menus from.
type DishHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDishHandler(db *sql.DB, cfg cliparse.Config) *DishHandler {
	return &DishHandler{db: db, cfg: cfg}
}

// Create handles POST /api/admin/restaurants/{restaurantId}/dishes
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
		return
	}

	var req models.DishRequest
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

	if err := validate.DishNameIsFree(h.db, restaurantID, req.Name, ""); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Dish name already in use")
			return
		}
		slog.Error("failed to check dish name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	dishID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO dish (id, restaurant_id, name, name_normalized, price)
		VALUES ($1, $2, $3, $4, $5)
	`, dishID, restaurantID, req.Name, validate.Normalize(req.Name), req.Price)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Dish name already in use")
			return
		}
		if dbx.IsForeignKeyViolation(err) {
			// Restaurant deleted between the existence check and the insert
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant not found")
			return
		}
		slog.Error("failed to insert dish", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create dish")
		return
	}

	slog.Info("dish created", "restaurant_id", restaurantID, "dish_id", dishID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.Dish{
		ID:           dishID,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        req.Price,
	})
}

// Get handles GET /api/admin/restaurants/{restaurantId}/dishes/{id}
func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	dishID := r.PathValue("id")
	if restaurantID == "" || dishID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	var dish models.Dish
	err := h.db.QueryRow(`
		SELECT id, restaurant_id, name, price FROM dish
		WHERE id = $1 AND restaurant_id = $2
	`, dishID, restaurantID).Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Price)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Dish not found")
		return
	}
	if err != nil {
		slog.Error("failed to query dish", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, dish)
}

// List handles GET /api/admin/restaurants/{restaurantId}/dishes
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	if restaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId is required")
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

	rows, err := h.db.Query(`
		SELECT id, restaurant_id, name, price FROM dish
		WHERE restaurant_id = $1
		ORDER BY name_normalized
	`, restaurantID)
	if err != nil {
		slog.Error("failed to query dishes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var dish models.Dish
		if err := rows.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Price); err != nil {
			slog.Error("failed to scan dish", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		dishes = append(dishes, dish)
	}

	middleware.JSONResponse(w, http.StatusOK, dishes)
}

// Update handles PUT /api/admin/restaurants/{restaurantId}/dishes/{id}
func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	dishID := r.PathValue("id")
	if restaurantID == "" || dishID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	var req models.DishRequest
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

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM dish WHERE id = $1 AND restaurant_id = $2)
	`, dishID, restaurantID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check dish", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Dish not found")
		return
	}

	if err := validate.DishNameIsFree(h.db, restaurantID, req.Name, dishID); err != nil {
		if errors.Is(err, validate.ErrDuplicateName) {
			middleware.ErrorResponse(w, http.StatusConflict, "Dish name already in use")
			return
		}
		slog.Error("failed to check dish name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		UPDATE dish SET name = $1, name_normalized = $2, price = $3
		WHERE id = $4 AND restaurant_id = $5
	`, req.Name, validate.Normalize(req.Name), req.Price, dishID, restaurantID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Dish name already in use")
			return
		}
		slog.Error("failed to update dish", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update dish")
		return
	}

	slog.Info("dish updated", "restaurant_id", restaurantID, "dish_id", dishID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.Dish{
		ID:           dishID,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        req.Price,
	})
}

// Delete handles DELETE /api/admin/restaurants/{restaurantId}/dishes/{id}
func (h *DishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("restaurantId")
	dishID := r.PathValue("id")
	if restaurantID == "" || dishID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurantId and id are required")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM dish WHERE id = $1 AND restaurant_id = $2
	`, dishID, restaurantID)
	if err != nil {
		slog.Error("failed to delete dish", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete dish")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete dish")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Dish not found")
		return
	}

	slog.Info("dish deleted", "restaurant_id", restaurantID, "dish_id", dishID)

	w.WriteHeader(http.StatusNoContent)
}
