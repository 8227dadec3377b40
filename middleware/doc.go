// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helpers for the Lunch Vote API.

# Authentication

RequireUser and RequireAdmin validate the Authorization bearer token and
put the caller's identity (user id + role) into the request context:

	mux.HandleFunc("POST /api/votes",
		middleware.WithLogging(middleware.RequireUser(cfg, voteHandler.Cast)))

Handlers read it back with IdentityFrom(r). RequireAdmin additionally
rejects non-admin roles with 403.

# Helpers

  - WithLogging: request start/completion logging via slog
  - JSONResponse / ErrorResponse: JSON encoding with the standard error envelope
  - ParseJSONBody: request body decoding
  - CORS: permissive cross-origin headers and preflight handling
*/
package middleware
