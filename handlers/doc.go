// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Lunch Vote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration and login
  - RestaurantHandler: Restaurant management and the daily ballot view
  - DishHandler: Per-restaurant reference dish management
  - MenuHandler: Daily menu assembly (create, replace, delete)
  - MenuItemHandler: Item-level edits within the active menu
  - VoteHandler: Vote casting and tally retrieval

Handlers are created via constructor functions that accept *sql.DB and Config:

	voteHandler := handlers.NewVoteHandler(db, cfg)

Handlers that depend on the current date carry a now func() time.Time
field so tests can pin "today" and the cutoff boundary.

# Voting Flow

Authenticated users interact with today's ballot:

	GET  /api/restaurants  → ListWithActualMenus (restaurants offering a menu today)
	POST /api/votes        → Cast (create, or change before the cutoff)
	GET  /api/votes        → GetMine (the caller's vote for today)
	GET  /api/votes/counts → GetCounts (per-restaurant tally)

A user's first vote of the day is always accepted. Changing it is only
allowed strictly before the configured cutoff time; at or after the
cutoff the change is rejected with 409.

# Admin Flow

Admin operations live under /api/admin and require the admin role:

	POST /api/admin/restaurants                    → Create
	POST /api/admin/restaurants/{id}/menu          → CreateOrReplace (today's menu)
	PUT  /api/admin/restaurants/{id}/menu/actual   → UpdateActual
	POST /api/admin/restaurants/{id}/menu/items    → MenuItemHandler.Create

Reference errors (missing restaurant, dish, or menu) map to 422; name
collisions and locked votes map to 409.
*/
package handlers
