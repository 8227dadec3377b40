// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides tokens, password hashing and ID generation for the
Lunch Vote server.

# Access Tokens

Tokens are HS256 JWTs carrying the user id (sub) and role claims with a
72 hour expiry:

	token, err := auth.GenerateToken(cfg.JWTSecret, user.ID, user.Role)
	id, err := auth.ParseToken(cfg.JWTSecret, tokenString)

ParseToken returns ErrInvalidToken for anything it cannot fully verify:
bad signature, wrong algorithm, expiry, or missing claims.

# Passwords

Passwords are stored as bcrypt hashes. CheckPassword deliberately folds
every mismatch into ErrInvalidCredentials so login responses do not leak
whether the email exists.

# IDs

NewID returns a random UUID string; all row identifiers in the schema
come from it.
*/
package auth
