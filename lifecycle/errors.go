// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"strings"

	"github.com/danielhkuo/stockpick/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrWindowClosed       = errors.New("submission window closed")
	ErrNotSettled         = errors.New("contest not settled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationErrors collects every field that failed validation
type ValidationErrors []models.FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Param + ": " + fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) add(param, msg string) {
	*v = append(*v, models.FieldError{Param: param, Msg: msg})
}

// err returns nil when nothing was collected so callers can return it directly
func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Validation messages
const (
	MsgNameRequired    = "Contest name is required"
	MsgTickerRequired  = "You must provide a valid stock ticker."
	MsgStartDate       = "Contest start date must be after the current time."
	MsgEndDate         = "End date of contest must be valid and after start date."
	MsgClosingPrice    = "Closing price must be a non-negative number with at most 4 decimal places."
	MsgClosingTooEarly = "Closing price can only be recorded once the contest has ended."
	MsgPrice           = "Please enter a valid possible price."
	MsgContestID       = "Contest id is required."
	MsgDisplayName     = "Display name is required"
	MsgEmail           = "Please include a valid email"
	MsgPassword        = "Please enter a password with 6 or more characters"
	MsgUserExists      = "User already exists"
)
