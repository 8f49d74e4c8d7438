// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/cliparse"
	"github.com/danielhkuo/stockpick/lifecycle"
	"github.com/danielhkuo/stockpick/middleware"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
)

type ContestHandler struct {
	contests *lifecycle.ContestService
}

func NewContestHandler(db *sql.DB, cfg cliparse.Config, clock clockwork.Clock) *ContestHandler {
	return &ContestHandler{
		contests: lifecycle.NewContestService(store.New(db), clock, cfg.BcryptCost),
	}
}

// Create handles POST /contests
func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestRequest
	if !decodeBody(w, r, &req, contestFields) {
		return
	}

	contest, err := h.contests.Create(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeError(w, err, "create contest", errorMessages{notFound: MsgContestNotFound})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contest)
}

// List handles GET /contests
func (h *ContestHandler) List(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contests.List(r.Context())
	if err != nil {
		writeError(w, err, "list contests", errorMessages{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// Get handles GET /contests/{id}
func (h *ContestHandler) Get(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "get contest", errorMessages{notFound: MsgContestNotFound})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contest)
}

// Update handles PATCH /contests/{id}
func (h *ContestHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ContestUpdate
	if !decodeBody(w, r, &req, contestFields) {
		return
	}

	contest, err := h.contests.Update(r.Context(), r.PathValue("id"), middleware.UserID(r.Context()), req)
	if err != nil {
		writeError(w, err, "update contest", errorMessages{
			notFound:  MsgContestNotFound,
			forbidden: MsgNotContestAdmin,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contest)
}

// Delete handles DELETE /contests/{id}. A missing contest and a caller who
// is not the admin get the same answer.
func (h *ContestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.contests.Delete(r.Context(), r.PathValue("id"), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err, "delete contest", errorMessages{
			notFound:  MsgPermissionDenied,
			forbidden: MsgPermissionDenied,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Msg: MsgContestDeleted})
}

// Standings handles GET /contests/{id}/standings
func (h *ContestHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.contests.Standings(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "contest standings", errorMessages{notFound: MsgContestNotFound})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, standings)
}
