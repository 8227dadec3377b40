// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types for the Lunch Vote API.

# Domain Types

  - User: account with role "user" or "admin"; password hash never serialized
  - Restaurant: named option users vote for
  - Menu: a restaurant's offering for one date; owns MenuItems
  - MenuItem: named priced entry, unique by name within its menu
  - Dish: per-restaurant reference item used to seed menus
  - Vote: one per (user, date); only the restaurant reference ever changes

Prices are integers in minor currency units. Dates travel as YYYY-MM-DD
strings (DateLayout); the "actual" menu is the one whose date equals the
server's current date.

# Request/Response Types

Request structs mirror the JSON bodies handlers accept; responses reuse
the domain types directly except for the auth flows (RegisterResponse,
LoginResponse) and the error envelope (ErrorResponse).
*/
package models
