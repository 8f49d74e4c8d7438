// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the stockpick API.

# Handler Types

Each handler wraps a lifecycle service built from the database, config,
and clock:

  - ContestHandler: contest create, list, read, update, delete, standings
  - PickHandler: pick submission and withdrawal
  - UserHandler: registration, login, current user

	contestHandler := handlers.NewContestHandler(db, cfg, clock)

The clock decides when a contest has started; tests pass a fake one.

# Contests

	POST   /contests                → Create (auth)
	GET    /contests                → List (latest end date first)
	GET    /contests/{id}           → Get (admin and picks populated)
	PATCH  /contests/{id}           → Update (admin only, partial)
	DELETE /contests/{id}           → Delete (admin only, removes picks)
	GET    /contests/{id}/standings → Standings (after a closing price is set)

# Picks

	POST   /picks      → Submit (create or overwrite, before start only)
	DELETE /picks/{id} → Delete (owner only, before start only)

Private contests require "password" in the pick body from everyone except
the admin.

# Errors

Business errors are answered with 400 and either {"msg": "..."} or
{"errors": [{"param": "...", "msg": "..."}]} for field validation. A body
that is not JSON gets {"msg": "Invalid JSON"}; a JSON body whose members have
the wrong type (a date that does not parse, a price that is not a number)
gets one field error per member.
Anything unexpected is logged and answered with 500 {"msg": "Server Error"}.
*/
package handlers
