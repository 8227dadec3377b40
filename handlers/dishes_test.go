// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/testutil"
)

func TestCreateDish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	restaurantID := testutil.CreateTestRestaurant(t, db, "Corner Bistro")

	tests := []struct {
		name           string
		restaurantID   string
		requestBody    models.DishRequest
		expectedStatus int
	}{
		{
			name:           "valid dish",
			restaurantID:   restaurantID,
			requestBody:    models.DishRequest{Name: "Soup", Price: 500},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate name in restaurant",
			restaurantID:   restaurantID,
			requestBody:    models.DishRequest{Name: " soup ", Price: 600},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown restaurant",
			restaurantID:   "missing",
			requestBody:    models.DishRequest{Name: "Salad", Price: 700},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad price",
			restaurantID:   restaurantID,
			requestBody:    models.DishRequest{Name: "Salad", Price: 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "markup in name",
			restaurantID:   restaurantID,
			requestBody:    models.DishRequest{Name: "<i>Salad</i>", Price: 700},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/restaurants/"+tt.restaurantID+"/dishes", tt.requestBody, nil)
			req.SetPathValue("restaurantId", tt.restaurantID)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestDishNameScopedPerRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	bistro := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	noodle := testutil.CreateTestRestaurant(t, db, "Noodle House")
	testutil.CreateTestDish(t, db, bistro, "Soup", 500)

	// The same dish name at a different restaurant is fine
	req := testutil.MakeRequest("POST", "/api/admin/restaurants/"+noodle+"/dishes",
		models.DishRequest{Name: "Soup", Price: 450}, nil)
	req.SetPathValue("restaurantId", noodle)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestGetDish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	restaurantID := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	dishID := testutil.CreateTestDish(t, db, restaurantID, "Soup", 500)

	t.Run("existing dish", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/"+restaurantID+"/dishes/"+dishID, nil, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", dishID)
		w := httptest.NewRecorder()

		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Dish
		testutil.AssertJSON(t, w, &resp)
		if resp.Name != "Soup" || resp.Price != 500 {
			t.Errorf("Expected Soup/500, got %s/%d", resp.Name, resp.Price)
		}
	})

	t.Run("unknown dish", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/"+restaurantID+"/dishes/missing", nil, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestListDishes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	restaurantID := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	testutil.CreateTestDish(t, db, restaurantID, "Soup", 500)
	testutil.CreateTestDish(t, db, restaurantID, "Salad", 700)

	t.Run("sorted by name", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/"+restaurantID+"/dishes", nil, nil)
		req.SetPathValue("restaurantId", restaurantID)
		w := httptest.NewRecorder()

		handler.List(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.Dish
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 2 {
			t.Fatalf("Expected 2 dishes, got %d", len(resp))
		}
		if resp[0].Name != "Salad" || resp[1].Name != "Soup" {
			t.Errorf("Expected alphabetical order, got %s, %s", resp[0].Name, resp[1].Name)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/restaurants/missing/dishes", nil, nil)
		req.SetPathValue("restaurantId", "missing")
		w := httptest.NewRecorder()

		handler.List(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestUpdateDish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	restaurantID := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	soupID := testutil.CreateTestDish(t, db, restaurantID, "Soup", 500)
	testutil.CreateTestDish(t, db, restaurantID, "Salad", 700)

	t.Run("price change keeping own name", func(t *testing.T) {
		body := models.DishRequest{Name: "Soup", Price: 550}
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+restaurantID+"/dishes/"+soupID, body, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", soupID)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var price int64
		if err := db.QueryRow("SELECT price FROM dish WHERE id = $1", soupID).Scan(&price); err != nil {
			t.Fatalf("Failed to query dish: %v", err)
		}
		if price != 550 {
			t.Errorf("Expected price 550, got %d", price)
		}
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		body := models.DishRequest{Name: "Salad", Price: 500}
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+restaurantID+"/dishes/"+soupID, body, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", soupID)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown dish", func(t *testing.T) {
		body := models.DishRequest{Name: "Anything", Price: 100}
		req := testutil.MakeRequest("PUT", "/api/admin/restaurants/"+restaurantID+"/dishes/missing", body, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestDeleteDish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDishHandler(db, cfg)

	restaurantID := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	dishID := testutil.CreateTestDish(t, db, restaurantID, "Soup", 500)

	t.Run("existing dish", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admin/restaurants/"+restaurantID+"/dishes/"+dishID, nil, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", dishID)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNoContent)
	})

	t.Run("already deleted", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admin/restaurants/"+restaurantID+"/dishes/"+dishID, nil, nil)
		req.SetPathValue("restaurantId", restaurantID)
		req.SetPathValue("id", dishID)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}
