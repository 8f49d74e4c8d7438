// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store is the SQL repository for users, contests, and picks.
//
// Queries use $N placeholders, which both lib/pq and modernc.org/sqlite
// accept. Missing rows surface as ErrNotFound and unique violations as
// ErrDuplicate. Contest deletion removes the contest's picks in the same
// transaction.
package store
