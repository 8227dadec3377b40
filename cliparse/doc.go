// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing for the Lunch Vote server.

Configuration comes from CLI flags with environment variable fallback;
flags win when both are set.

# Settings

  - -p / PORT: server port (default 3318)
  - -d / DATABASE_URL: sqlite file path or PostgreSQL connection string (required)
  - -t / DATABASE_TYPE: "sqlite" or "postgres" (default sqlite)
  - -jwt-secret / JWT_SECRET: token signing secret (required)
  - -cutoff / VOTE_CUTOFF: daily re-vote cutoff, HH:MM (default 11:00)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		// missing required settings or malformed values
	}

The cutoff string is validated here so the voting package can assume it
always parses.
*/
package cliparse
