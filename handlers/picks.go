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

type PickHandler struct {
	picks *lifecycle.PickService
}

func NewPickHandler(db *sql.DB, cfg cliparse.Config, clock clockwork.Clock) *PickHandler {
	return &PickHandler{picks: lifecycle.NewPickService(store.New(db), clock)}
}

// Submit handles POST /picks. Resubmitting for the same contest overwrites
// the caller's earlier price.
func (h *PickHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPickRequest
	if !decodeBody(w, r, &req, pickFields) {
		return
	}

	pick, err := h.picks.Submit(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeError(w, err, "submit pick", errorMessages{
			notFound:  MsgContestNotFound,
			forbidden: MsgWrongPassword,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pick)
}

// Delete handles DELETE /picks/{id}
func (h *PickHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.picks.Delete(r.Context(), r.PathValue("id"), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err, "delete pick", errorMessages{
			notFound:  MsgPickNotFound,
			forbidden: MsgPermissionDenied,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Msg: MsgPickDeleted})
}
