// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the vote rule engine: whether a user may cast
or change a vote for the current date, and the application of that vote.

# Rules

  - A vote targets a restaurant that has a menu dated with the voting
    date; otherwise ErrNoActiveMenu.
  - The first vote of a day is always allowed, regardless of time.
  - An existing vote's restaurant may be changed in place (same row, same
    id) strictly before the configured cutoff time of day; at or after
    the cutoff the change fails with ErrVoteLocked and nothing is
    written. The boundary is inclusive: exactly at the cutoff is locked.
  - Exactly one vote row per (user, date) ever exists; the store's
    UNIQUE(user_id, voting_date) index serializes concurrent requests by
    the same user.

# Clock

CastVote takes the current instant as a parameter. Callers inject it
(handlers use a now func() time.Time field), so cutoff evaluation is
deterministic and the boundary is testable to the second.

	cutoff, _ := voting.ParseCutoff(cfg.VoteCutoff)
	vote, created, err := voting.CastVote(db, cutoff, userID, restaurantID, time.Now())
*/
package voting
