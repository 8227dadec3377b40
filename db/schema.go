// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Dates (menu_date, voting_date) are ISO YYYY-MM-DD strings and timestamps
// are RFC 3339 strings so the same schema works on sqlite and postgres.
// Case-insensitive name uniqueness is carried by the *_normalized columns.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    registered_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

-- Restaurants
CREATE TABLE IF NOT EXISTS restaurant (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_normalized TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_restaurant_name ON restaurant(name_normalized);

-- Menus (one per restaurant per date)
CREATE TABLE IF NOT EXISTS menu (
    id TEXT PRIMARY KEY,
    restaurant_id TEXT NOT NULL REFERENCES restaurant(id) ON DELETE CASCADE,
    menu_date TEXT NOT NULL,
    UNIQUE (restaurant_id, menu_date)
);

CREATE INDEX IF NOT EXISTS idx_menu_restaurant_date ON menu(restaurant_id, menu_date);

-- Menu items (names unique within a menu)
CREATE TABLE IF NOT EXISTS menu_item (
    id TEXT PRIMARY KEY,
    menu_id TEXT NOT NULL REFERENCES menu(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    price INTEGER NOT NULL CHECK (price > 0),
    UNIQUE (menu_id, name_normalized)
);

CREATE INDEX IF NOT EXISTS idx_menu_item_menu_id ON menu_item(menu_id);

-- Dishes (reference items used to seed menus, unique per restaurant)
CREATE TABLE IF NOT EXISTS dish (
    id TEXT PRIMARY KEY,
    restaurant_id TEXT NOT NULL REFERENCES restaurant(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    price INTEGER NOT NULL CHECK (price > 0),
    UNIQUE (restaurant_id, name_normalized)
);

CREATE INDEX IF NOT EXISTS idx_dish_restaurant_id ON dish(restaurant_id);

-- Votes (one per user per date; user_id and voting_date never change)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    voting_date TEXT NOT NULL,
    restaurant_id TEXT NOT NULL REFERENCES restaurant(id) ON DELETE CASCADE,
    UNIQUE (user_id, voting_date)
);

CREATE INDEX IF NOT EXISTS idx_vote_user_date ON vote(user_id, voting_date);
CREATE INDEX IF NOT EXISTS idx_vote_date ON vote(voting_date);
`
