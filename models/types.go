package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request types

type CreateContestRequest struct {
	Name      string    `json:"name"`
	Ticker    string    `json:"ticker"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Password  string    `json:"password,omitempty"`
}

// ContestUpdate is the allow-list of fields a PATCH may touch.
// A nil field is left as stored.
type ContestUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Ticker       *string          `json:"ticker,omitempty"`
	StartDate    *time.Time       `json:"startDate,omitempty"`
	EndDate      *time.Time       `json:"endDate,omitempty"`
	Password     *string          `json:"password,omitempty"`
	ClosingPrice *decimal.Decimal `json:"closingPrice,omitempty"`
}

// Empty reports whether the update carries no fields at all
func (u ContestUpdate) Empty() bool {
	return u.Name == nil && u.Ticker == nil && u.StartDate == nil &&
		u.EndDate == nil && u.Password == nil && u.ClosingPrice == nil
}

type SubmitPickRequest struct {
	Price     *decimal.Decimal `json:"price"`
	ContestID string           `json:"contestId"`
	Password  string           `json:"password,omitempty"`
}

type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Avatar      string `json:"avatar,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the body of confirmations and single-message errors
type MessageResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one itemized validation failure
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// Domain types

// UserRef is the populated view of a referenced user
type UserRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
}

type User struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"date"`
}

type Contest struct {
	ID           string           `json:"id"`
	Admin        UserRef          `json:"admin"`
	Name         string           `json:"name"`
	Ticker       string           `json:"ticker"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	Private      bool             `json:"private"`
	PasswordHash string           `json:"-"` // Never expose in JSON
	ClosingPrice *decimal.Decimal `json:"closingPrice,omitempty"`
	CreatedAt    time.Time        `json:"date"`
}

// ContestDetail is a contest with its picks populated
type ContestDetail struct {
	Contest
	Picks []PickSummary `json:"picks"`
}

type Pick struct {
	ID          string          `json:"id"`
	ContestID   string          `json:"contest"`
	UserID      string          `json:"user"`
	Price       decimal.Decimal `json:"price"`
	SubmittedAt time.Time       `json:"date"`
}

// PickSummary is a pick as shown inside a populated contest
type PickSummary struct {
	ID          string          `json:"id"`
	User        UserRef         `json:"user"`
	Price       decimal.Decimal `json:"price"`
	SubmittedAt time.Time       `json:"date"`
}

// Standing is one ranked pick of a settled contest
type Standing struct {
	Rank     int             `json:"rank"` // 1-indexed ranking
	PickID   string          `json:"pickId"`
	User     UserRef         `json:"user"`
	Price    decimal.Decimal `json:"price"`
	Distance decimal.Decimal `json:"distance"`
}
