// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/cliparse"
	"github.com/danielhkuo/stockpick/handlers"
	"github.com/danielhkuo/stockpick/middleware"
	"github.com/danielhkuo/stockpick/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, clock clockwork.Clock) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(db, cfg, clock)
	pickHandler := handlers.NewPickHandler(db, cfg, clock)
	userHandler := handlers.NewUserHandler(db, cfg, clock)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithAuth(cfg.JWTSecret, clock, h))
	}

	// Health check
	st := store.New(db)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("POST /auth", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("GET /auth", authed(userHandler.Me))

	// Contests (reads are public)
	mux.HandleFunc("POST /contests", authed(contestHandler.Create))
	mux.HandleFunc("GET /contests", middleware.WithLogging(contestHandler.List))
	mux.HandleFunc("GET /contests/{id}", middleware.WithLogging(contestHandler.Get))
	mux.HandleFunc("PATCH /contests/{id}", authed(contestHandler.Update))
	mux.HandleFunc("DELETE /contests/{id}", authed(contestHandler.Delete))
	mux.HandleFunc("GET /contests/{id}/standings", middleware.WithLogging(contestHandler.Standings))

	// Picks
	mux.HandleFunc("POST /picks", authed(pickHandler.Submit))
	mux.HandleFunc("DELETE /picks/{id}", authed(pickHandler.Delete))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("stockpick API v1"))
	})

	return mux
}
