// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/auth"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
)

// PickStore is what the pick lifecycle needs from persistence
type PickStore interface {
	GetContest(ctx context.Context, id string) (*models.Contest, error)
	UpsertPick(ctx context.Context, p *models.Pick) (*models.Pick, error)
	GetPick(ctx context.Context, id string) (*models.Pick, error)
	DeletePick(ctx context.Context, id string) error
}

type PickService struct {
	store PickStore
	clock clockwork.Clock
}

func NewPickService(s PickStore, clock clockwork.Clock) *PickService {
	return &PickService{store: s, clock: clock}
}

// Submit creates the caller's pick for a contest, or overwrites its price
// if one exists. Picks are accepted strictly before the contest starts.
// Private contests require the contest password from everyone but the admin.
func (s *PickService) Submit(ctx context.Context, userID string, req models.SubmitPickRequest) (*models.Pick, error) {
	var verrs ValidationErrors
	if req.Price == nil || !validPrice(*req.Price) {
		verrs.add("price", MsgPrice)
	}
	contestID := strings.TrimSpace(req.ContestID)
	if contestID == "" {
		verrs.add("contestId", MsgContestID)
	}
	if err := verrs.err(); err != nil {
		return nil, err
	}

	contest, err := s.contest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	if contest.Private && contest.Admin.ID != userID {
		if req.Password == "" || auth.CompareSecret(contest.PasswordHash, req.Password) != nil {
			return nil, ErrForbidden
		}
	}

	now := s.clock.Now()
	if !windowOpen(contest, now) {
		return nil, ErrWindowClosed
	}

	pick, err := s.store.UpsertPick(ctx, &models.Pick{
		ID:          auth.GenerateID(),
		ContestID:   contest.ID,
		UserID:      userID,
		Price:       *req.Price,
		SubmittedAt: now,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("pick submitted", "pick_id", pick.ID, "contest_id", contest.ID, "user_id", userID)
	return pick, nil
}

func (s *PickService) Get(ctx context.Context, pickID string) (*models.Pick, error) {
	pick, err := s.store.GetPick(ctx, pickID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return pick, err
}

// Delete withdraws the caller's pick. Like submission, it is only allowed
// before the contest starts.
func (s *PickService) Delete(ctx context.Context, pickID, callerID string) error {
	pick, err := s.Get(ctx, pickID)
	if err != nil {
		return err
	}
	if pick.UserID != callerID {
		return ErrForbidden
	}

	contest, err := s.contest(ctx, pick.ContestID)
	if err != nil {
		return err
	}
	if !windowOpen(contest, s.clock.Now()) {
		return ErrWindowClosed
	}

	if err := s.store.DeletePick(ctx, pickID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slog.Info("pick deleted", "pick_id", pickID, "contest_id", pick.ContestID, "user_id", callerID)
	return nil
}

func (s *PickService) contest(ctx context.Context, contestID string) (*models.Contest, error) {
	contest, err := s.store.GetContest(ctx, contestID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return contest, err
}
