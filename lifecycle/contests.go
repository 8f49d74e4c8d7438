// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/stockpick/auth"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
)

// ContestStore is what the contest lifecycle needs from persistence
type ContestStore interface {
	CreateContest(ctx context.Context, c *models.Contest) error
	GetContest(ctx context.Context, id string) (*models.Contest, error)
	ListContests(ctx context.Context) ([]models.Contest, error)
	UpdateContest(ctx context.Context, id string, changes store.ContestChanges) error
	DeleteContest(ctx context.Context, id string) error
	ListContestPicks(ctx context.Context, contestID string) ([]models.PickSummary, error)
	PicksByContest(ctx context.Context) (map[string][]models.PickSummary, error)
}

type ContestService struct {
	store      ContestStore
	clock      clockwork.Clock
	bcryptCost int
}

func NewContestService(s ContestStore, clock clockwork.Clock, bcryptCost int) *ContestService {
	return &ContestService{store: s, clock: clock, bcryptCost: bcryptCost}
}

// Create validates the request and persists a contest owned by adminID.
// The start date must be strictly in the future and the end date strictly
// after the start date. A new contest has no picks.
func (s *ContestService) Create(ctx context.Context, adminID string, req models.CreateContestRequest) (*models.ContestDetail, error) {
	now := s.clock.Now()

	var verrs ValidationErrors
	name := strings.TrimSpace(req.Name)
	if name == "" {
		verrs.add("name", MsgNameRequired)
	}
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		verrs.add("ticker", MsgTickerRequired)
	}
	if !req.StartDate.After(now) {
		verrs.add("startDate", MsgStartDate)
	}
	if !req.EndDate.After(req.StartDate) {
		verrs.add("endDate", MsgEndDate)
	}
	if err := verrs.err(); err != nil {
		return nil, err
	}

	contest := &models.Contest{
		ID:        auth.GenerateID(),
		Admin:     models.UserRef{ID: adminID},
		Name:      name,
		Ticker:    ticker,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: now,
	}

	if req.Password != "" {
		hash, err := auth.HashSecret(req.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		contest.PasswordHash = hash
		contest.Private = true
	}

	if err := s.store.CreateContest(ctx, contest); err != nil {
		return nil, err
	}

	slog.Info("contest created", "contest_id", contest.ID, "admin_id", adminID, "ticker", ticker)

	created, err := s.load(ctx, contest.ID)
	if err != nil {
		return nil, err
	}
	return &models.ContestDetail{Contest: *created, Picks: []models.PickSummary{}}, nil
}

// List returns all contests with their picks, latest end date first
func (s *ContestService) List(ctx context.Context) ([]models.ContestDetail, error) {
	contests, err := s.store.ListContests(ctx)
	if err != nil {
		return nil, err
	}
	byContest, err := s.store.PicksByContest(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]models.ContestDetail, len(contests))
	for i, c := range contests {
		picks := byContest[c.ID]
		if picks == nil {
			picks = []models.PickSummary{}
		}
		details[i] = models.ContestDetail{Contest: c, Picks: picks}
	}
	return details, nil
}

// Get returns the contest with its admin and picks populated
func (s *ContestService) Get(ctx context.Context, contestID string) (*models.ContestDetail, error) {
	contest, err := s.load(ctx, contestID)
	if err != nil {
		return nil, err
	}

	picks, err := s.store.ListContestPicks(ctx, contestID)
	if err != nil {
		return nil, err
	}

	return &models.ContestDetail{Contest: *contest, Picks: picks}, nil
}

// Update applies the provided fields only. Each field is held to the same
// rule as on create; the end date is checked against the effective start
// date (new if provided, stored otherwise).
func (s *ContestService) Update(ctx context.Context, contestID, callerID string, u models.ContestUpdate) (*models.ContestDetail, error) {
	contest, err := s.load(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Admin.ID != callerID {
		return nil, ErrForbidden
	}

	if u.Empty() {
		return s.Get(ctx, contestID)
	}

	now := s.clock.Now()
	var verrs ValidationErrors
	var changes store.ContestChanges

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			verrs.add("name", MsgNameRequired)
		}
		changes.Name = &name
	}
	if u.Ticker != nil {
		ticker := strings.TrimSpace(*u.Ticker)
		if ticker == "" {
			verrs.add("ticker", MsgTickerRequired)
		}
		changes.Ticker = &ticker
	}

	start, end := contest.StartDate, contest.EndDate
	if u.StartDate != nil {
		if !u.StartDate.After(now) {
			verrs.add("startDate", MsgStartDate)
		}
		start = *u.StartDate
		changes.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		end = *u.EndDate
		changes.EndDate = u.EndDate
	}
	if (u.StartDate != nil || u.EndDate != nil) && !end.After(start) {
		verrs.add("endDate", MsgEndDate)
	}

	if u.ClosingPrice != nil {
		if !validPrice(*u.ClosingPrice) {
			verrs.add("closingPrice", MsgClosingPrice)
		} else if now.Before(end) {
			verrs.add("closingPrice", MsgClosingTooEarly)
		}
		changes.ClosingPrice = u.ClosingPrice
	}

	if err := verrs.err(); err != nil {
		return nil, err
	}

	if u.Password != nil {
		hash := ""
		if *u.Password != "" {
			hash, err = auth.HashSecret(*u.Password, s.bcryptCost)
			if err != nil {
				return nil, err
			}
		}
		changes.PasswordHash = &hash
	}

	if err := s.store.UpdateContest(ctx, contestID, changes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	slog.Info("contest updated", "contest_id", contestID, "admin_id", callerID)

	return s.Get(ctx, contestID)
}

// Delete removes the contest and its picks. Only the admin may delete.
func (s *ContestService) Delete(ctx context.Context, contestID, callerID string) error {
	contest, err := s.load(ctx, contestID)
	if err != nil {
		return err
	}
	if contest.Admin.ID != callerID {
		return ErrForbidden
	}

	if err := s.store.DeleteContest(ctx, contestID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slog.Info("contest deleted", "contest_id", contestID, "admin_id", callerID)
	return nil
}

// Standings ranks the picks of a contest with a recorded closing price
func (s *ContestService) Standings(ctx context.Context, contestID string) ([]models.Standing, error) {
	contest, err := s.load(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.ClosingPrice == nil {
		return nil, ErrNotSettled
	}

	picks, err := s.store.ListContestPicks(ctx, contestID)
	if err != nil {
		return nil, err
	}

	return RankPicks(*contest.ClosingPrice, picks), nil
}

func (s *ContestService) load(ctx context.Context, contestID string) (*models.Contest, error) {
	contest, err := s.store.GetContest(ctx, contestID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contest, nil
}

// windowOpen reports whether picks may still change at now
func windowOpen(contest *models.Contest, now time.Time) bool {
	return now.Before(contest.StartDate)
}
