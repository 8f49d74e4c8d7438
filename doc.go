// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the stockpick API server.

stockpick runs stock-price prediction contests: an admin opens a contest on
a ticker with a start and end date, players submit one price pick each
before the contest starts, and once it ends the admin records the closing
price and the closest pick wins.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	DATABASE_URL=stockpick.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file/DSN or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HMAC secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL_HOURS (-token-ttl): token lifetime (default: 120)
  - BCRYPT_COST (-bcrypt-cost): password digest cost (default: 10)
  - CORS_ORIGINS (-cors-origins): comma separated allow-list (default: *)

# Architecture

  - handlers: HTTP request handlers (contests, picks, users)
  - lifecycle: contest and pick rules (validation, ownership, pick window)
  - store: SQL persistence for users, contests, picks
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, auth, logging, JSON helpers
  - models: Request/response and domain types
  - auth: JWTs, bcrypt digests, ID generation
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
