// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	dbx "github.com/danielhkuo/lunchvote/db"
	"github.com/danielhkuo/lunchvote/models"
)

var (
	ErrVoteLocked   = errors.New("vote can no longer be changed today")
	ErrNoActiveMenu = errors.New("restaurant has no menu for the voting date")
)

// Cutoff is the wall-clock time of day from which an existing vote is
// locked. The date part of "now" is irrelevant to the comparison.
type Cutoff struct {
	hour   int
	minute int
}

// ParseCutoff parses an HH:MM (24h) cutoff string.
func ParseCutoff(s string) (Cutoff, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Cutoff{}, fmt.Errorf("invalid cutoff %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Cutoff{}, fmt.Errorf("invalid cutoff hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Cutoff{}, fmt.Errorf("invalid cutoff minute in %q", s)
	}
	return Cutoff{hour: hour, minute: minute}, nil
}

// LockedAt reports whether an existing vote may no longer be changed at
// the given instant. The boundary is inclusive: exactly at the cutoff
// the vote is already locked.
func (c Cutoff) LockedAt(now time.Time) bool {
	h, m, s := now.Clock()
	nowSecs := (h*60+m)*60 + s
	cutoffSecs := (c.hour*60 + c.minute) * 60
	return nowSecs >= cutoffSecs
}

// CastVote creates or changes the caller's vote for now's date.
//
// The first vote of the day is always allowed, whatever the time. A
// later call for the same date changes the existing vote's restaurant in
// place (same row, same id) when now is before the cutoff, and fails
// with ErrVoteLocked from the cutoff on. The restaurant must have a menu
// dated with the voting date, else ErrNoActiveMenu.
//
// A vote is a single row, so no multi-statement transaction is needed:
// the UNIQUE index on (user_id, voting_date) serializes concurrent
// requests by the same user, and an insert that loses that race falls
// back to the change path under the same cutoff rule.
//
// Returns the resulting vote and whether a new row was created.
func CastVote(db *sql.DB, cutoff Cutoff, userID, restaurantID string, now time.Time) (models.Vote, bool, error) {
	votingDate := now.Format(models.DateLayout)

	// The vote target needs an active menu for the voting date (this also
	// rejects restaurants that do not exist at all)
	var hasMenu bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM menu
			WHERE restaurant_id = $1 AND menu_date = $2
		)
	`, restaurantID, votingDate).Scan(&hasMenu)
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to check active menu: %w", err)
	}
	if !hasMenu {
		return models.Vote{}, false, ErrNoActiveMenu
	}

	var voteID string
	err = db.QueryRow(`
		SELECT id FROM vote WHERE user_id = $1 AND voting_date = $2
	`, userID, votingDate).Scan(&voteID)

	if err == sql.ErrNoRows {
		// First vote of the day
		voteID = uuid.NewString()
		_, err = db.Exec(`
			INSERT INTO vote (id, user_id, voting_date, restaurant_id)
			VALUES ($1, $2, $3, $4)
		`, voteID, userID, votingDate, restaurantID)

		if err == nil {
			return models.Vote{
				ID:           voteID,
				UserID:       userID,
				VotingDate:   votingDate,
				RestaurantID: restaurantID,
			}, true, nil
		}
		if dbx.IsForeignKeyViolation(err) {
			// Restaurant deleted between the menu check and the insert
			return models.Vote{}, false, ErrNoActiveMenu
		}
		if !dbx.IsUniqueViolation(err) {
			return models.Vote{}, false, fmt.Errorf("failed to insert vote: %w", err)
		}
		// Lost a race with a concurrent request by the same user: a row
		// exists now, so this call is a change, not a create
	} else if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to query vote: %w", err)
	}

	// A vote exists; only the restaurant reference may change, and only
	// before the cutoff. Re-voting for the same restaurant is an
	// ordinary in-place write under the same rule.
	if cutoff.LockedAt(now) {
		return models.Vote{}, false, ErrVoteLocked
	}

	// Update keyed by the immutable pair, not the id read above, so the
	// race fallback path needs no re-read
	_, err = db.Exec(`
		UPDATE vote SET restaurant_id = $1
		WHERE user_id = $2 AND voting_date = $3
	`, restaurantID, userID, votingDate)
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to update vote: %w", err)
	}

	err = db.QueryRow(`
		SELECT id FROM vote WHERE user_id = $1 AND voting_date = $2
	`, userID, votingDate).Scan(&voteID)
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to read back vote: %w", err)
	}

	return models.Vote{
		ID:           voteID,
		UserID:       userID,
		VotingDate:   votingDate,
		RestaurantID: restaurantID,
	}, false, nil
}

// GetVote returns the user's vote for the given date. Read-only; a
// missing vote surfaces as sql.ErrNoRows.
func GetVote(db *sql.DB, userID, votingDate string) (models.Vote, error) {
	var v models.Vote
	err := db.QueryRow(`
		SELECT id, user_id, voting_date, restaurant_id
		FROM vote
		WHERE user_id = $1 AND voting_date = $2
	`, userID, votingDate).Scan(&v.ID, &v.UserID, &v.VotingDate, &v.RestaurantID)
	if err != nil {
		return models.Vote{}, err
	}
	return v, nil
}

// CountByRestaurant tallies votes per restaurant for a date. Restaurants
// with no votes are omitted.
func CountByRestaurant(db *sql.DB, votingDate string) ([]models.VoteCount, error) {
	rows, err := db.Query(`
		SELECT r.id, r.name, COUNT(v.id)
		FROM vote v
		JOIN restaurant r ON r.id = v.restaurant_id
		WHERE v.voting_date = $1
		GROUP BY r.id, r.name
		ORDER BY COUNT(v.id) DESC, r.name
	`, votingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := []models.VoteCount{}
	for rows.Next() {
		var c models.VoteCount
		if err := rows.Scan(&c.RestaurantID, &c.RestaurantName, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
