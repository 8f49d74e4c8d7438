// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/stockpick/models"
)

// ContestChanges lists the columns an update writes. Nil fields are left alone.
// An empty PasswordHash clears the password and makes the contest public.
type ContestChanges struct {
	Name         *string
	Ticker       *string
	StartDate    *time.Time
	EndDate      *time.Time
	PasswordHash *string
	ClosingPrice *decimal.Decimal
}

func (s *Store) CreateContest(ctx context.Context, c *models.Contest) error {
	var hash sql.NullString
	if c.PasswordHash != "" {
		hash = sql.NullString{String: c.PasswordHash, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contest (id, admin_id, name, ticker, start_date, end_date, private, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.Admin.ID, c.Name, c.Ticker, utc(c.StartDate), utc(c.EndDate), c.Private, hash, utc(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert contest: %w", err)
	}
	return nil
}

// GetContest returns the contest with its admin populated and the password
// digest loaded. Picks are not loaded; see ListContestPicks.
func (s *Store) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	row := s.db.QueryRowContext(ctx, contestSelect+`
		WHERE c.id = $1
	`, id)

	c, err := scanContest(row)
	if err != nil {
		return nil, notFound(err, "contest")
	}
	return c, nil
}

// ListContests returns every contest ordered by end date, latest first
func (s *Store) ListContests(ctx context.Context) ([]models.Contest, error) {
	rows, err := s.db.QueryContext(ctx, contestSelect+`
		ORDER BY c.end_date DESC, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()

	contests := []models.Contest{}
	for rows.Next() {
		c, err := scanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		contests = append(contests, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contests: %w", err)
	}
	return contests, nil
}

// UpdateContest writes only the columns present in changes
func (s *Store) UpdateContest(ctx context.Context, id string, changes ContestChanges) error {
	var sets []string
	var args []interface{}
	set := func(column string, v interface{}) {
		args = append(args, v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Ticker != nil {
		set("ticker", *changes.Ticker)
	}
	if changes.StartDate != nil {
		set("start_date", utc(*changes.StartDate))
	}
	if changes.EndDate != nil {
		set("end_date", utc(*changes.EndDate))
	}
	if changes.PasswordHash != nil {
		if *changes.PasswordHash == "" {
			set("password_hash", sql.NullString{})
			set("private", false)
		} else {
			set("password_hash", *changes.PasswordHash)
			set("private", true)
		}
	}
	if changes.ClosingPrice != nil {
		set("closing_price", *changes.ClosingPrice)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE contest SET "+strings.Join(sets, ", ")+" WHERE id = $"+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return fmt.Errorf("failed to update contest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update contest: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContest removes the contest and all of its picks in one transaction
func (s *Store) DeleteContest(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pick WHERE contest_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete picks: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM contest WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListContestPicks returns the contest's picks with owners populated,
// oldest submission first
func (s *Store) ListContestPicks(ctx context.Context, contestID string) ([]models.PickSummary, error) {
	byContest, err := s.pickSummaries(ctx, "WHERE p.contest_id = $1", contestID)
	if err != nil {
		return nil, err
	}
	if picks, ok := byContest[contestID]; ok {
		return picks, nil
	}
	return []models.PickSummary{}, nil
}

// PicksByContest returns every pick with its owner, keyed by contest id.
// Contests without picks have no entry.
func (s *Store) PicksByContest(ctx context.Context) (map[string][]models.PickSummary, error) {
	return s.pickSummaries(ctx, "")
}

func (s *Store) pickSummaries(ctx context.Context, where string, args ...interface{}) (map[string][]models.PickSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.contest_id, p.id, p.price, p.submitted_at, u.id, u.display_name, u.avatar
		FROM pick p
		JOIN app_user u ON u.id = p.user_id
		`+where+`
		ORDER BY p.submitted_at, p.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	byContest := map[string][]models.PickSummary{}
	for rows.Next() {
		var contestID string
		var p models.PickSummary
		if err := rows.Scan(&contestID, &p.ID, &p.Price, &p.SubmittedAt, &p.User.ID, &p.User.DisplayName, &p.User.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		p.SubmittedAt = utc(p.SubmittedAt)
		byContest[contestID] = append(byContest[contestID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate picks: %w", err)
	}
	return byContest, nil
}

const contestSelect = `
		SELECT c.id, c.name, c.ticker, c.start_date, c.end_date, c.private,
		       c.password_hash, c.closing_price, c.created_at,
		       u.id, u.display_name, u.avatar
		FROM contest c
		JOIN app_user u ON u.id = c.admin_id`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContest(row scanner) (*models.Contest, error) {
	var c models.Contest
	var hash sql.NullString
	var closing decimal.NullDecimal

	err := row.Scan(
		&c.ID, &c.Name, &c.Ticker, &c.StartDate, &c.EndDate, &c.Private,
		&hash, &closing, &c.CreatedAt,
		&c.Admin.ID, &c.Admin.DisplayName, &c.Admin.Avatar,
	)
	if err != nil {
		return nil, err
	}

	c.StartDate = utc(c.StartDate)
	c.EndDate = utc(c.EndDate)
	c.CreatedAt = utc(c.CreatedAt)
	c.PasswordHash = hash.String
	if closing.Valid {
		price := closing.Decimal
		c.ClosingPrice = &price
	}
	return &c, nil
}
