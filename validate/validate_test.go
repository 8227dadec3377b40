// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/testutil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Corner Bistro", "corner bistro"},
		{"  Corner Bistro  ", "corner bistro"},
		{"CORNER BISTRO", "corner bistro"},
		{"soup", "soup"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.input))
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Corner Bistro", false},
		{"minimum length", "Ok", false},
		{"ampersand allowed", "Fish & Chips", false},
		{"apostrophe allowed", "Joe's Diner", false},
		{"surrounding spaces trimmed", "  Soup  ", false},
		{"cyrillic name", "Столовая", false},
		{"long cyrillic name counted in runes", strings.Repeat("й", 100), false},
		{"too short", "A", true},
		{"single multibyte rune too short", "日", true},
		{"101 runes", strings.Repeat("é", 101), true},
		{"only spaces", "   ", true},
		{"empty", "", true},
		{"script tag", "<script>alert(1)</script>", true},
		{"embedded markup", "Soup <b>of the day</b>", true},
		{"too long", string(make([]byte, 101)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckPrice(t *testing.T) {
	assert.NoError(t, CheckPrice(1))
	assert.NoError(t, CheckPrice(1250))
	assert.ErrorIs(t, CheckPrice(0), ErrBadPrice)
	assert.ErrorIs(t, CheckPrice(-100), ErrBadPrice)
}

func TestRestaurantNameIsFree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	id := testutil.CreateTestRestaurant(t, db, "Corner Bistro")

	// Unused name
	assert.NoError(t, RestaurantNameIsFree(db, "Noodle House", ""))

	// Taken name, case- and space-insensitively
	assert.ErrorIs(t, RestaurantNameIsFree(db, "Corner Bistro", ""), ErrDuplicateName)
	assert.ErrorIs(t, RestaurantNameIsFree(db, "  CORNER bistro ", ""), ErrDuplicateName)

	// Editing the owner of the name is not a collision
	assert.NoError(t, RestaurantNameIsFree(db, "Corner Bistro", id))

	// Editing a different restaurant to that name still is
	other := testutil.CreateTestRestaurant(t, db, "Noodle House")
	assert.ErrorIs(t, RestaurantNameIsFree(db, "Corner Bistro", other), ErrDuplicateName)
}

func TestDishNameIsFree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	bistro := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	noodle := testutil.CreateTestRestaurant(t, db, "Noodle House")
	dishID := testutil.CreateTestDish(t, db, bistro, "Soup", 500)

	assert.ErrorIs(t, DishNameIsFree(db, bistro, "Soup", ""), ErrDuplicateName)
	assert.ErrorIs(t, DishNameIsFree(db, bistro, " soup ", ""), ErrDuplicateName)

	// Uniqueness is scoped per restaurant
	assert.NoError(t, DishNameIsFree(db, noodle, "Soup", ""))

	// Self-exclusion for updates
	assert.NoError(t, DishNameIsFree(db, bistro, "Soup", dishID))
}

func TestMenuItemNameIsFree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	bistro := testutil.CreateTestRestaurant(t, db, "Corner Bistro")
	menuToday := testutil.CreateTestMenu(t, db, bistro, "2025-06-02")
	menuTomorrow := testutil.CreateTestMenu(t, db, bistro, "2025-06-03")
	itemID := testutil.AddTestMenuItem(t, db, menuToday, "Soup", 500)

	assert.ErrorIs(t, MenuItemNameIsFree(db, menuToday, "Soup", ""), ErrDuplicateName)
	assert.ErrorIs(t, MenuItemNameIsFree(db, menuToday, "SOUP", ""), ErrDuplicateName)

	// Uniqueness is scoped per menu, not per restaurant
	assert.NoError(t, MenuItemNameIsFree(db, menuTomorrow, "Soup", ""))

	// Updating the item itself (for example changing only its price) passes
	assert.NoError(t, MenuItemNameIsFree(db, menuToday, "Soup", itemID))
}

func TestCheckItemSet(t *testing.T) {
	valid := []models.MenuItemRequest{
		{Name: "Soup", Price: 500},
		{Name: "Salad", Price: 700},
	}
	require.NoError(t, CheckItemSet(valid))

	assert.Error(t, CheckItemSet([]models.MenuItemRequest{}))
	assert.Error(t, CheckItemSet(nil))

	dup := []models.MenuItemRequest{
		{Name: "Soup", Price: 500},
		{Name: " soup ", Price: 600},
	}
	assert.ErrorIs(t, CheckItemSet(dup), ErrDuplicateName)

	badName := []models.MenuItemRequest{{Name: "A", Price: 500}}
	assert.ErrorIs(t, CheckItemSet(badName), ErrBadName)

	badPrice := []models.MenuItemRequest{{Name: "Soup", Price: 0}}
	assert.ErrorIs(t, CheckItemSet(badPrice), ErrBadPrice)
}
