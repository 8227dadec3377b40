// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Lunch Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /auth/register - Create a user account
	POST /auth/login    - Exchange credentials for a JWT

Daily ballot (authenticated, Bearer token):

	GET  /api/restaurants  - Restaurants offering a menu today
	POST /api/votes        - Cast or change today's vote
	GET  /api/votes        - The caller's vote for today
	GET  /api/votes/counts - Per-restaurant vote tally for today

Restaurant management (admin):

	POST   /api/admin/restaurants      - Create restaurant
	GET    /api/admin/restaurants      - List restaurants
	GET    /api/admin/restaurants/{id} - Get restaurant
	PUT    /api/admin/restaurants/{id} - Rename restaurant
	DELETE /api/admin/restaurants/{id} - Delete restaurant

Dish management (admin):

	POST   /api/admin/restaurants/{restaurantId}/dishes
	GET    /api/admin/restaurants/{restaurantId}/dishes
	GET    /api/admin/restaurants/{restaurantId}/dishes/{id}
	PUT    /api/admin/restaurants/{restaurantId}/dishes/{id}
	DELETE /api/admin/restaurants/{restaurantId}/dishes/{id}

Menu management (admin):

	POST   /api/admin/restaurants/{restaurantId}/menu         - Create or replace today's menu
	GET    /api/admin/restaurants/{restaurantId}/menu/actual  - Today's menu
	GET    /api/admin/restaurants/{restaurantId}/menu/by-date - Menu for ?date=YYYY-MM-DD
	PUT    /api/admin/restaurants/{restaurantId}/menu/actual  - Replace today's items
	DELETE /api/admin/restaurants/{restaurantId}/menu/actual  - Delete today's menu

Menu item management (admin, scoped to the active menu):

	POST   /api/admin/restaurants/{restaurantId}/menu/items
	GET    /api/admin/restaurants/{restaurantId}/menu/items/{id}
	PUT    /api/admin/restaurants/{restaurantId}/menu/items/{id}
	DELETE /api/admin/restaurants/{restaurantId}/menu/items/{id}

# Handler Initialization

The router creates handler instances with dependency injection:

	accountHandler := handlers.NewAccountHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)

All handlers receive the database connection and configuration.
Authenticated routes are wrapped in middleware.RequireUser or
middleware.RequireAdmin, which validate the Bearer token and store the
caller's identity in the request context.
*/
package router
