// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"

	"github.com/danielhkuo/stockpick/lifecycle"
	"github.com/danielhkuo/stockpick/middleware"
	"github.com/danielhkuo/stockpick/models"
)

const maxBodyBytes = 1 << 20

// field names a request member and the message sent when its value has the
// wrong shape (a number where text belongs, an unparseable date or price)
type field struct {
	param string
	msg   string
}

var (
	contestFields = []field{
		{"name", lifecycle.MsgNameRequired},
		{"ticker", lifecycle.MsgTickerRequired},
		{"startDate", lifecycle.MsgStartDate},
		{"endDate", lifecycle.MsgEndDate},
		{"password", MsgContestPassword},
		{"closingPrice", lifecycle.MsgClosingPrice},
	}
	pickFields = []field{
		{"price", lifecycle.MsgPrice},
		{"contestId", lifecycle.MsgContestID},
		{"password", MsgContestPassword},
	}
	userFields = []field{
		{"displayName", lifecycle.MsgDisplayName},
		{"email", lifecycle.MsgEmail},
		{"password", lifecycle.MsgPassword},
		{"avatar", MsgAvatar},
	}
)

// decodeBody parses the request body into v and reports whether the handler
// should go on. A body that is not JSON is answered with MsgInvalidJSON; a
// JSON object whose members do not fit v is answered with one field error
// per offending member.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, fields []field) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err := middleware.ParseJSONBody(r, v); err != nil {
		if ferrs := badFields(body, v, fields); len(ferrs) > 0 {
			middleware.ValidationResponse(w, ferrs)
			return false
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	return true
}

// badFields decodes each known member of a JSON object on its own into a
// fresh value of v's type and returns the members that fail. It returns nil
// when body is not a JSON object.
func badFields(body []byte, v interface{}, fields []field) []models.FieldError {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return nil
	}

	target := reflect.TypeOf(v).Elem()
	var ferrs []models.FieldError
	for _, f := range fields {
		raw, ok := members[f.param]
		if !ok {
			continue
		}
		single, err := json.Marshal(map[string]json.RawMessage{f.param: raw})
		if err != nil {
			continue
		}
		if err := json.Unmarshal(single, reflect.New(target).Interface()); err != nil {
			ferrs = append(ferrs, models.FieldError{Param: f.param, Msg: f.msg})
		}
	}
	return ferrs
}
