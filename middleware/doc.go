// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client) and completion (status, duration_ms).

# Authentication

Routes that need a caller are wrapped with WithAuth:

	mux.HandleFunc("POST /contests", middleware.WithLogging(
		middleware.WithAuth(cfg.JWTSecret, clock, h.Create)))

The token is read from "Authorization: Bearer <token>" or x-auth-token.
Missing tokens get 401 {"msg":"No token, authorization denied"}; invalid or
expired ones get 401 {"msg":"Token is not valid"}. Handlers read the caller
with middleware.UserID(r.Context()).

# CORS

	handler := middleware.CORS(cfg.CORSOrigins)(mux)

Backed by rs/cors. Allows GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Auth-Token.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Contest not found.")
	middleware.ValidationResponse(w, fieldErrors)

Parse JSON request bodies:

	var req models.SubmitPickRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
