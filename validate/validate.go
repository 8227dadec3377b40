// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"database/sql"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/danielhkuo/lunchvote/models"
)

var (
	ErrDuplicateName = errors.New("name already in use")
	ErrBadName       = errors.New("name must be 2-100 characters without markup")
	ErrBadPrice      = errors.New("price must be a positive integer")
)

// strict strips every tag and attribute; a name is clean only if
// stripping changes nothing.
var strict = bluemonday.StrictPolicy()

// Normalize returns the canonical form of a name used for uniqueness:
// trimmed and lower-cased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CheckName validates the shape of a restaurant/dish/menu-item name:
// 2-100 characters after trimming, no markup content.
func CheckName(name string) error {
	trimmed := strings.TrimSpace(name)
	// Length is counted in runes, not bytes, so non-ASCII names are
	// bounded the same way as ASCII ones.
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 100 {
		return ErrBadName
	}
	// Unescape after sanitizing so literal '&' survives while tags do not
	if html.UnescapeString(strict.Sanitize(trimmed)) != trimmed {
		return ErrBadName
	}
	return nil
}

// CheckPrice validates a price in minor currency units.
func CheckPrice(price int64) error {
	if price <= 0 {
		return ErrBadPrice
	}
	return nil
}

// RestaurantNameIsFree reports whether name can be used for a restaurant.
// excludingID identifies the restaurant being edited, so that updating a
// restaurant without changing its name is not a duplicate; pass "" on
// create. Decision only - nothing is written.
func RestaurantNameIsFree(db *sql.DB, name, excludingID string) error {
	var foundID string
	err := db.QueryRow(`
		SELECT id FROM restaurant WHERE name_normalized = $1
	`, Normalize(name)).Scan(&foundID)

	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check restaurant name: %w", err)
	}
	if foundID == excludingID {
		// editing self
		return nil
	}
	return ErrDuplicateName
}

// DishNameIsFree is the same decision scoped to one restaurant's dishes.
func DishNameIsFree(db *sql.DB, restaurantID, name, excludingID string) error {
	var foundID string
	err := db.QueryRow(`
		SELECT id FROM dish WHERE restaurant_id = $1 AND name_normalized = $2
	`, restaurantID, Normalize(name)).Scan(&foundID)

	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check dish name: %w", err)
	}
	if foundID == excludingID {
		return nil
	}
	return ErrDuplicateName
}

// MenuItemNameIsFree is the same decision scoped to one menu.
func MenuItemNameIsFree(db *sql.DB, menuID, name, excludingID string) error {
	var foundID string
	err := db.QueryRow(`
		SELECT id FROM menu_item WHERE menu_id = $1 AND name_normalized = $2
	`, menuID, Normalize(name)).Scan(&foundID)

	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check menu item name: %w", err)
	}
	if foundID == excludingID {
		return nil
	}
	return ErrDuplicateName
}

// CheckItemSet validates an incoming menu payload as a whole: every item
// name and price well-formed and no two items sharing a normalized name.
func CheckItemSet(items []models.MenuItemRequest) error {
	if len(items) == 0 {
		return errors.New("menu must contain at least one item")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := CheckName(item.Name); err != nil {
			return err
		}
		if err := CheckPrice(item.Price); err != nil {
			return err
		}
		key := Normalize(item.Name)
		if seen[key] {
			return ErrDuplicateName
		}
		seen[key] = true
	}
	return nil
}
