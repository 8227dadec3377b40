// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Lunch Vote API server.

Lunch Vote is a restaurant lunch-voting service: administrators manage
restaurants, reference dishes and daily menus, and registered users cast
one vote per day for the restaurant whose menu they prefer. An existing
vote can be changed until a configurable cutoff time; from the cutoff on
it is locked for the rest of the day.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=lunchvote.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." -jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): secret for signing access tokens

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTE_CUTOFF (-cutoff): HH:MM wall-clock time after which an existing
    vote can no longer be changed (default: 11:00)

A .env file in the working directory is loaded before flag parsing.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, restaurants, dishes, menus, menu items, votes)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, JWT identity extraction
  - models: domain and request/response types
  - auth: tokens, password hashing, ID generation
  - voting: the vote rule engine (cutoff decision and vote upsert)
  - validate: duplicate-name and markup validators
  - db: driver selection, schema creation, constraint classification
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
