// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle holds the rules for contests, picks, and accounts.

# Contests

ContestService validates and persists contests. A contest's start date must
be in the future when set, and its end date strictly after its start date.
Only the admin may update or delete; deletion removes the contest's picks.
A closing price can be recorded once the contest has ended, after which
Standings ranks the picks by distance from it.

# Picks

PickService enforces one pick per user per contest: a second submission
overwrites the price of the first. Picks can be submitted, changed, or
withdrawn only while the clock is strictly before the contest start.

	svc := lifecycle.NewPickService(store.New(db), clockwork.NewRealClock())
	pick, err := svc.Submit(ctx, userID, req)

# Errors

Services return ValidationErrors for field problems and the sentinels
ErrNotFound, ErrForbidden, ErrWindowClosed, ErrNotSettled, and
ErrInvalidCredentials for everything else. Handlers map them to HTTP.
*/
package lifecycle
