// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema for the Lunch Vote server.

# Drivers

Open selects the driver from the configured database type:

  - sqlite: modernc.org/sqlite (pure Go, used for development and tests)
  - postgres: github.com/lib/pq

SQL throughout the server uses $N placeholders in strictly sequential
order, which both drivers bind positionally.

# Schema

CreateSchema is idempotent (IF NOT EXISTS) and creates:

  - users: accounts with role (user/admin) and unique email
  - restaurant: unique normalized name
  - menu: one per (restaurant, date)
  - menu_item: owned by a menu, names unique within it
  - dish: per-restaurant reference items used to seed menus
  - vote: one per (user, date); the UNIQUE(user_id, voting_date) index is
    the serialization point for concurrent votes by the same user

# Constraint classification

IsUniqueViolation and IsForeignKeyViolation classify driver errors so
handlers can translate a racing constraint rejection into the same
duplicate-name or missing-reference response the application-level check
would have produced.
*/
package db
