// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate contains the consistency validators for restaurant,
dish and menu item writes.

Every validator is a pure decision function over current database state
plus the candidate value; nothing here mutates anything. Callers run the
relevant validator before committing a write, and the store's UNIQUE
constraints remain the backstop for concurrent writers.

# Uniqueness

Names are compared in normalized form (trimmed, lower-cased). Each
*IsFree function takes an explicit excludingID naming the row being
edited, so both "updating a row while keeping its name" and "update
addressed by path id with no id in the body" resolve to not-a-duplicate
when the caller passes the path id.

# Shape checks

CheckName enforces the 2-100 character bound and rejects markup content
(a name survives a strict sanitizer pass unchanged or it is rejected).
CheckPrice enforces positive minor-unit prices. CheckItemSet applies
both across a whole incoming menu payload and rejects internal duplicate
names before any row is written.
*/
package validate
