// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/lunchvote/cliparse"
	"github.com/danielhkuo/lunchvote/handlers"
	"github.com/danielhkuo/lunchvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	restaurantHandler := handlers.NewRestaurantHandler(db, cfg)
	dishHandler := handlers.NewDishHandler(db, cfg)
	menuHandler := handlers.NewMenuHandler(db, cfg)
	menuItemHandler := handlers.NewMenuItemHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account operations (public)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))

	// Daily ballot (authenticated users)
	mux.HandleFunc("GET /api/restaurants", middleware.WithLogging(middleware.RequireUser(cfg, restaurantHandler.ListWithActualMenus)))
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(middleware.RequireUser(cfg, voteHandler.Cast)))
	mux.HandleFunc("GET /api/votes", middleware.WithLogging(middleware.RequireUser(cfg, voteHandler.GetMine)))
	mux.HandleFunc("GET /api/votes/counts", middleware.WithLogging(middleware.RequireUser(cfg, voteHandler.GetCounts)))

	// Restaurant management (admin)
	mux.HandleFunc("POST /api/admin/restaurants", middleware.WithLogging(middleware.RequireAdmin(cfg, restaurantHandler.Create)))
	mux.HandleFunc("GET /api/admin/restaurants", middleware.WithLogging(middleware.RequireAdmin(cfg, restaurantHandler.List)))
	mux.HandleFunc("GET /api/admin/restaurants/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, restaurantHandler.Get)))
	mux.HandleFunc("PUT /api/admin/restaurants/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, restaurantHandler.Update)))
	mux.HandleFunc("DELETE /api/admin/restaurants/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, restaurantHandler.Delete)))

	// Dish management (admin)
	mux.HandleFunc("POST /api/admin/restaurants/{restaurantId}/dishes", middleware.WithLogging(middleware.RequireAdmin(cfg, dishHandler.Create)))
	mux.HandleFunc("GET /api/admin/restaurants/{restaurantId}/dishes", middleware.WithLogging(middleware.RequireAdmin(cfg, dishHandler.List)))
	mux.HandleFunc("GET /api/admin/restaurants/{restaurantId}/dishes/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, dishHandler.Get)))
	mux.HandleFunc("PUT /api/admin/restaurants/{restaurantId}/dishes/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, dishHandler.Update)))
	mux.HandleFunc("DELETE /api/admin/restaurants/{restaurantId}/dishes/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, dishHandler.Delete)))

	// Menu management (admin)
	mux.HandleFunc("POST /api/admin/restaurants/{restaurantId}/menu", middleware.WithLogging(middleware.RequireAdmin(cfg, menuHandler.CreateOrReplace)))
	mux.HandleFunc("GET /api/admin/restaurants/{restaurantId}/menu/actual", middleware.WithLogging(middleware.RequireAdmin(cfg, menuHandler.GetActual)))
	mux.HandleFunc("GET /api/admin/restaurants/{restaurantId}/menu/by-date", middleware.WithLogging(middleware.RequireAdmin(cfg, menuHandler.GetByDate)))
	mux.HandleFunc("PUT /api/admin/restaurants/{restaurantId}/menu/actual", middleware.WithLogging(middleware.RequireAdmin(cfg, menuHandler.UpdateActual)))
	mux.HandleFunc("DELETE /api/admin/restaurants/{restaurantId}/menu/actual", middleware.WithLogging(middleware.RequireAdmin(cfg, menuHandler.DeleteActual)))

	// Menu item management within the active menu (admin)
	mux.HandleFunc("POST /api/admin/restaurants/{restaurantId}/menu/items", middleware.WithLogging(middleware.RequireAdmin(cfg, menuItemHandler.Create)))
	mux.HandleFunc("GET /api/admin/restaurants/{restaurantId}/menu/items/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, menuItemHandler.Get)))
	mux.HandleFunc("PUT /api/admin/restaurants/{restaurantId}/menu/items/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, menuItemHandler.Update)))
	mux.HandleFunc("DELETE /api/admin/restaurants/{restaurantId}/menu/items/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, menuItemHandler.Delete)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lunchvote API v1"))
	})

	return mux
}
