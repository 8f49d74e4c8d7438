// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/auth"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService registers accounts and issues bearer tokens
type UserService struct {
	store      UserStore
	clock      clockwork.Clock
	secret     string
	ttl        time.Duration
	bcryptCost int
}

func NewUserService(s UserStore, clock clockwork.Clock, secret string, ttl time.Duration, bcryptCost int) *UserService {
	return &UserService{store: s, clock: clock, secret: secret, ttl: ttl, bcryptCost: bcryptCost}
}

// Register creates an account and returns a token for it
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var verrs ValidationErrors
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		verrs.add("displayName", MsgDisplayName)
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		verrs.add("email", MsgEmail)
	}
	if len(req.Password) < 6 {
		verrs.add("password", MsgPassword)
	}
	if err := verrs.err(); err != nil {
		return "", err
	}

	hash, err := auth.HashSecret(req.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:           auth.GenerateID(),
		DisplayName:  displayName,
		Email:        email,
		Avatar:       strings.TrimSpace(req.Avatar),
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", ValidationErrors{{Param: "email", Msg: MsgUserExists}}
		}
		return "", err
	}

	slog.Info("user registered", "user_id", user.ID)
	return auth.IssueToken(user.ID, s.secret, s.ttl, s.clock.Now())
}

// Login checks credentials and returns a fresh token
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	email, ok := normalizeEmail(req.Email)
	if !ok || req.Password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := auth.CompareSecret(user.PasswordHash, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	return auth.IssueToken(user.ID, s.secret, s.ttl, s.clock.Now())
}

// Me returns the account behind an authenticated user id
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func normalizeEmail(raw string) (string, bool) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}
