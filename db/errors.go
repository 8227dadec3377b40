// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import "strings"

// IsUniqueViolation reports whether err is the backing store rejecting a
// write that would break a UNIQUE constraint. Application-level duplicate
// checks run first, but two concurrent requests can both pass them; the
// constraint is the authoritative guard and this classifies its rejection.
//
// Neither lib/pq nor modernc/sqlite exposes a stable typed error for this,
// so both driver message forms are matched.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}

// IsForeignKeyViolation reports whether err is the store rejecting a write
// whose referenced row does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || // sqlite
		strings.Contains(msg, "violates foreign key constraint") // postgres
}
