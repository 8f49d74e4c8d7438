// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/stockpick/models"
)

// UpsertPick creates the user's pick for the contest or overwrites the
// price of the existing one. The UNIQUE (contest_id, user_id) constraint
// makes concurrent submissions converge on a single row; the returned
// pick keeps the id of whichever row was written first.
func (s *Store) UpsertPick(ctx context.Context, p *models.Pick) (*models.Pick, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pick (id, contest_id, user_id, price, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (contest_id, user_id)
		DO UPDATE SET price = excluded.price, submitted_at = excluded.submitted_at
	`, p.ID, p.ContestID, p.UserID, p.Price, utc(p.SubmittedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pick: %w", err)
	}

	return s.FindPick(ctx, p.ContestID, p.UserID)
}

func (s *Store) GetPick(ctx context.Context, id string) (*models.Pick, error) {
	return s.scanPick(ctx, `WHERE id = $1`, id)
}

// FindPick returns the pick a user holds in a contest
func (s *Store) FindPick(ctx context.Context, contestID, userID string) (*models.Pick, error) {
	return s.scanPick(ctx, `WHERE contest_id = $1 AND user_id = $2`, contestID, userID)
}

func (s *Store) DeletePick(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pick WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete pick: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete pick: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) scanPick(ctx context.Context, where string, args ...interface{}) (*models.Pick, error) {
	var p models.Pick
	err := s.db.QueryRowContext(ctx, `
		SELECT id, contest_id, user_id, price, submitted_at
		FROM pick
		`+where, args...).Scan(&p.ID, &p.ContestID, &p.UserID, &p.Price, &p.SubmittedAt)
	if err != nil {
		return nil, notFound(err, "pick")
	}
	p.SubmittedAt = utc(p.SubmittedAt)
	return &p, nil
}
