// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/lunchvote/auth"
	"github.com/danielhkuo/lunchvote/cliparse"
	"github.com/danielhkuo/lunchvote/db"
)

// normalize mirrors the production normalization for name_normalized
// columns without importing the validate package, which has tests that
// depend on this one.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Today returns the current date in the wire format used for menu and
// voting dates.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		VoteCutoff:   "11:00",
	}
}

// CreateTestUser inserts a user with the given role and returns its ID.
// The password for every test user is "password".
func CreateTestUser(t *testing.T, conn *sql.DB, email, role string) string {
	t.Helper()

	id := auth.NewID()
	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, "Test User", email, hash, role, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// TokenFor issues a valid bearer token for the user under the test config
func TokenFor(t *testing.T, cfg cliparse.Config, userID, role string) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, userID, role)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// CreateTestRestaurant inserts a restaurant and returns its ID
func CreateTestRestaurant(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO restaurant (id, name, name_normalized, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, name, normalize(name), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test restaurant: %v", err)
	}

	return id
}

// CreateTestMenu inserts a menu for the restaurant on the given date
func CreateTestMenu(t *testing.T, conn *sql.DB, restaurantID, date string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO menu (id, restaurant_id, menu_date)
		VALUES ($1, $2, $3)
	`, id, restaurantID, date)
	if err != nil {
		t.Fatalf("Failed to create test menu: %v", err)
	}

	return id
}

// AddTestMenuItem inserts an item into a menu and returns the item ID
func AddTestMenuItem(t *testing.T, conn *sql.DB, menuID, name string, price int64) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO menu_item (id, menu_id, name, name_normalized, price)
		VALUES ($1, $2, $3, $4, $5)
	`, id, menuID, name, normalize(name), price)
	if err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}

	return id
}

// CreateTestDish inserts a reference dish for a restaurant
func CreateTestDish(t *testing.T, conn *sql.DB, restaurantID, name string, price int64) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO dish (id, restaurant_id, name, name_normalized, price)
		VALUES ($1, $2, $3, $4, $5)
	`, id, restaurantID, name, normalize(name), price)
	if err != nil {
		t.Fatalf("Failed to create test dish: %v", err)
	}

	return id
}

// CreateTestVote inserts a vote row directly
func CreateTestVote(t *testing.T, conn *sql.DB, userID, votingDate, restaurantID string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote (id, user_id, voting_date, restaurant_id)
		VALUES ($1, $2, $3, $4)
	`, id, userID, votingDate, restaurantID)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
