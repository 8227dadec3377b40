// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/lunchvote/cliparse"
	"github.com/danielhkuo/lunchvote/middleware"
	"github.com/danielhkuo/lunchvote/models"
	"github.com/danielhkuo/lunchvote/voting"
)

type VoteHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	cutoff voting.Cutoff
	now    func() time.Time
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	// cliparse has already validated the cutoff format
	cutoff, _ := voting.ParseCutoff(cfg.VoteCutoff)
	return &VoteHandler{db: db, cfg: cfg, cutoff: cutoff, now: time.Now}
}

// Cast handles POST /api/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r)

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RestaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}

	vote, created, err := voting.CastVote(h.db, h.cutoff, caller.UserID, req.RestaurantID, h.now())
	if err != nil {
		switch {
		case errors.Is(err, voting.ErrNoActiveMenu):
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Restaurant has no menu for today")
		case errors.Is(err, voting.ErrVoteLocked):
			middleware.ErrorResponse(w, http.StatusConflict, "Vote can no longer be changed today")
		default:
			slog.Error("failed to cast vote", "error", err, "user_id", caller.UserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		}
		return
	}

	slog.Info("vote cast", "user_id", caller.UserID, "restaurant_id", vote.RestaurantID,
		"voting_date", vote.VotingDate, "created", created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, vote)
}

// GetMine handles GET /api/votes - the caller's vote for today
func (h *VoteHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r)
	today := h.now().Format(models.DateLayout)

	vote, err := voting.GetVote(h.db, caller.UserID, today)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "No vote for today")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err, "user_id", caller.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}

// GetCounts handles GET /api/votes/counts - today's per-restaurant tally
func (h *VoteHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(models.DateLayout)

	counts, err := voting.CountByRestaurant(h.db, today)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, counts)
}
