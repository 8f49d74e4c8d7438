// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stockpick/lifecycle"
	"github.com/danielhkuo/stockpick/middleware"
)

const (
	MsgInvalidJSON        = "Invalid JSON"
	MsgContestNotFound    = "Contest not found."
	MsgPickNotFound       = "Pick not found."
	MsgNotContestAdmin    = "You are not authorized to edit this contest."
	MsgPermissionDenied   = "Permission Denied."
	MsgWindowClosed       = "Cannot add or modify a pick after a contest has started."
	MsgWrongPassword      = "Incorrect contest password."
	MsgNotSettled         = "Contest has not been settled."
	MsgInvalidCredentials = "Invalid Credentials"
	MsgUserNotFound       = "User not found."
	MsgServerError        = "Server Error"
	MsgContestDeleted     = "Contest deleted."
	MsgPickDeleted        = "Pick deleted."
	MsgContestPassword    = "Contest password must be text."
	MsgAvatar             = "Avatar must be a URL."
)

// errorMessages picks the client message for each business error; the
// HTTP edge answers every one of them with 400.
type errorMessages struct {
	notFound  string
	forbidden string
}

// writeError maps a lifecycle error to the response body. Unknown errors
// are logged and answered with 500.
func writeError(w http.ResponseWriter, err error, op string, msgs errorMessages) {
	var verrs lifecycle.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		middleware.ValidationResponse(w, verrs)
	case errors.Is(err, lifecycle.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusBadRequest, msgs.notFound)
	case errors.Is(err, lifecycle.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusBadRequest, msgs.forbidden)
	case errors.Is(err, lifecycle.ErrWindowClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgWindowClosed)
	case errors.Is(err, lifecycle.ErrNotSettled):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgNotSettled)
	case errors.Is(err, lifecycle.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgInvalidCredentials)
	default:
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, MsgServerError)
	}
}
