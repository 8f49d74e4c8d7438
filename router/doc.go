// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the stockpick API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, clockwork.NewRealClock())

# Endpoints

Health:

	GET /health - "OK" once the database answers a ping

Accounts:

	POST /users - Register, returns {token}
	POST /auth  - Log in, returns {token}
	GET  /auth  - Current user (auth)

Contests:

	POST   /contests                - Create (auth)
	GET    /contests                - List
	GET    /contests/{id}           - Contest with admin and picks
	PATCH  /contests/{id}           - Partial update (auth, admin)
	DELETE /contests/{id}           - Delete with picks (auth, admin)
	GET    /contests/{id}/standings - Ranking once settled

Picks:

	POST   /picks      - Submit or overwrite (auth)
	DELETE /picks/{id} - Withdraw (auth, owner)

Routes marked auth are wrapped with middleware.WithAuth, which takes the
token from "Authorization: Bearer" or x-auth-token.
*/
package router
