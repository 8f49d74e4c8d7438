// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/cliparse"
	"github.com/danielhkuo/stockpick/lifecycle"
	"github.com/danielhkuo/stockpick/middleware"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
)

type UserHandler struct {
	users *lifecycle.UserService
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config, clock clockwork.Clock) *UserHandler {
	ttl := time.Duration(cfg.TokenTTL) * time.Hour
	return &UserHandler{
		users: lifecycle.NewUserService(store.New(db), clock, cfg.JWTSecret, ttl, cfg.BcryptCost),
	}
}

// Register handles POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req, userFields) {
		return
	}

	token, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err, "register user", errorMessages{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Login handles POST /auth
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req, userFields) {
		return
	}

	token, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, err, "login", errorMessages{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Me handles GET /auth
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err, "current user", errorMessages{notFound: MsgUserNotFound})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
