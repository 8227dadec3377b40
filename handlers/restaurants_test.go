// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/testutil"
)

func TestCreateRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid restaurant",
			requestBody:    models.RestaurantRequest{Name: "Corner Bistro"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "ampersand in name",
			requestBody:    models.RestaurantRequest{Name: "Fish & Chips"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "name too short",
			requestBody:    models.RestaurantRequest{Name: "A"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name with markup",
			requestBody:    models.RestaurantRequest{Name: "<b>Corner Bistro</b>"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/restaurants", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.Restaurant
				testutil.AssertJSON(t, w, &resp)
				if resp.ID == "" {
					t.Error("Expected non-empty restaurant id")
				}
			}
		})
	}
}

func TestCreateRestaurantDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)
	testutil.CreateTestRestaurant(t, db, "Corner Bistro")

	// Duplicate detection ignores case and surrounding whitespace
	for _, name := range []string{"Corner Bistro", "CORNER BISTRO", "  corner bistro  "} {
		req := testutil.MakeRequest("POST", "/api/admin/restaurants", models.RestaurantRequest{Name: name}, nil)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	}
}

func TestUpdateRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)
	id := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	testutil.CreateTestRestaurant(t, db, "Noodle House")

	t.Run("rename", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+id, models.RestaurantRequest{Name: "Corner Cafe"}, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var name string
		if err := db.QueryRow("SELECT name FROM restaurant WHERE id = $1", id).Scan(&name); err != nil {
			t.Fatalf("Failed to query restaurant: %v", err)
		}
		if name != "Corner Cafe" {
			t.Errorf("Expected name 'Corner Cafe', got '%s'", name)
		}
	})

	t.Run("keeping own name is not a duplicate", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+id, models.RestaurantRequest{Name: "Corner Cafe"}, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("renaming to a taken name conflicts", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+id, models.RestaurantRequest{Name: "Noodle House"}, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/missing", models.RestaurantRequest{Name: "Anything Valid"}, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestGetRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)
	id := testutil.CreateTestRestaurant(t, db, "Corner Bistro")

	t.Run("existing restaurant", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Restaurant
		testutil.AssertJSON(t, w, &resp)
		if resp.Name != "Corner Bistro" {
			t.Errorf("Expected name 'Corner Bistro', got '%s'", resp.Name)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/missing", nil, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestListRestaurants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)

	t.Run("empty list", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants", nil, nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.Restaurant
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 0 {
			t.Errorf("Expected empty list, got %d entries", len(resp))
		}
	})

	t.Run("sorted by name", func(t *testing.T) {
		testutil.CreateTestRestaurant(t, db, "Noodle House")
		testutil.CreateTestRestaurant(t, db, "Corner Bistro")

		req := testutil.MakeRequest("GET", "/api/admin/restaurants", nil, nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.Restaurant
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 2 {
			t.Fatalf("Expected 2 restaurants, got %d", len(resp))
		}
		if resp[0].Name != "Corner Bistro" || resp[1].Name != "Noodle House" {
			t.Errorf("Expected alphabetical order, got %s, %s", resp[0].Name, resp[1].Name)
		}
	})
}

func TestDeleteRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)
	id := testutil.CreateTestRestaurant(t, db, "Corner Bistro")

	t.Run("existing restaurant", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admin/restaurants/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNoContent)

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM restaurant WHERE id = $1", id).Scan(&count); err != nil {
			t.Fatalf("Failed to query restaurant: %v", err)
		}
		if count != 0 {
			t.Error("Expected restaurant to be deleted")
		}
	})

	t.Run("already deleted", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admin/restaurants/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestListWithActualMenus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRestaurantHandler(db, cfg)
	handler.now = func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	}

	bistro := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	noodle := testutil.CreateTestRestaurant(t, db, "Noodle House")
	testutil.CreateTestRestaurant(t, db, "Closed Today")

	menuID := testutil.CreateTestMenu(t, db, bistro, "2025-06-02")
	testutil.AddTestMenuItem(t, db, menuID, "Soup", 500)
	testutil.AddTestMenuItem(t, db, menuID, "Salad", 700)

	// A menu for another day does not put the restaurant on the ballot
	testutil.CreateTestMenu(t, db, noodle, "2025-06-01")

	req := testutil.MakeRequest("GET", "/api/restaurants", nil, nil)
	w := httptest.NewRecorder()

	handler.ListWithActualMenus(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.RestaurantWithMenu
	testutil.AssertJSON(t, w, &resp)

	if len(resp) != 1 {
		t.Fatalf("Expected 1 restaurant on the ballot, got %d", len(resp))
	}
	if resp[0].Restaurant.ID != bistro {
		t.Errorf("Expected restaurant %s, got %s", bistro, resp[0].Restaurant.ID)
	}
	if resp[0].Menu.Date != "2025-06-02" {
		t.Errorf("Expected menu date 2025-06-02, got %s", resp[0].Menu.Date)
	}
	if len(resp[0].Menu.Items) != 2 {
		t.Fatalf("Expected 2 menu items, got %d", len(resp[0].Menu.Items))
	}
	// Items sorted by name
	if resp[0].Menu.Items[0].Name != "Salad" || resp[0].Menu.Items[1].Name != "Soup" {
		t.Errorf("Expected items sorted by name, got %s, %s",
			resp[0].Menu.Items[0].Name, resp[0].Menu.Items[1].Name)
	}
}
