// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/stockpick/auth"
	"github.com/danielhkuo/stockpick/models"
	"github.com/danielhkuo/stockpick/store"
	"github.com/danielhkuo/stockpick/testutil"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestContestCreate_Validation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	adminID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")

	now := time.Now().UTC().Truncate(time.Second)
	clock := clockwork.NewFakeClockAt(now)
	svc := NewContestService(store.New(conn), clock, cfg.BcryptCost)

	tomorrow := now.Add(24 * time.Hour)
	dayAfter := now.Add(48 * time.Hour)

	tests := []struct {
		name       string
		req        models.CreateContestRequest
		wantParams []string
	}{
		{
			name: "valid contest",
			req:  models.CreateContestRequest{Name: "Apple week", Ticker: "AAPL", StartDate: tomorrow, EndDate: dayAfter},
		},
		{
			name:       "end equals start",
			req:        models.CreateContestRequest{Name: "Apple week", Ticker: "AAPL", StartDate: tomorrow, EndDate: tomorrow},
			wantParams: []string{"endDate"},
		},
		{
			name:       "end before start",
			req:        models.CreateContestRequest{Name: "Apple week", Ticker: "AAPL", StartDate: dayAfter, EndDate: tomorrow},
			wantParams: []string{"endDate"},
		},
		{
			name:       "start in the past",
			req:        models.CreateContestRequest{Name: "Apple week", Ticker: "AAPL", StartDate: now.Add(-time.Hour), EndDate: dayAfter},
			wantParams: []string{"startDate"},
		},
		{
			name:       "start equals now",
			req:        models.CreateContestRequest{Name: "Apple week", Ticker: "AAPL", StartDate: now, EndDate: dayAfter},
			wantParams: []string{"startDate"},
		},
		{
			name:       "blank name and ticker",
			req:        models.CreateContestRequest{Name: "  ", Ticker: "", StartDate: tomorrow, EndDate: dayAfter},
			wantParams: []string{"name", "ticker"},
		},
		{
			name:       "missing everything",
			req:        models.CreateContestRequest{},
			wantParams: []string{"name", "ticker", "startDate", "endDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contest, err := svc.Create(context.Background(), adminID, tt.req)

			if len(tt.wantParams) == 0 {
				if err != nil {
					t.Fatalf("Expected success, got %v", err)
				}
				if contest.Admin.ID != adminID || contest.Admin.DisplayName != "Alice" {
					t.Errorf("Expected admin Alice, got %+v", contest.Admin)
				}
				if !contest.EndDate.After(contest.StartDate) || !contest.StartDate.After(now) {
					t.Errorf("Date invariants violated: %v .. %v", contest.StartDate, contest.EndDate)
				}
				if contest.Private {
					t.Error("Contest without password must be public")
				}
				if body, _ := json.Marshal(contest); !strings.Contains(string(body), `"picks":[]`) {
					t.Errorf("Expected an empty picks list, got %s", body)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %v", err)
			}
			if len(verrs) != len(tt.wantParams) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.wantParams), len(verrs), verrs)
			}
			for i, p := range tt.wantParams {
				if verrs[i].Param != p {
					t.Errorf("Error %d: expected param %s, got %s", i, p, verrs[i].Param)
				}
			}
		})
	}

	if n := testutil.CountRows(t, conn, "contest", "1 = 1"); n != 1 {
		t.Errorf("Expected only the valid contest to be stored, got %d", n)
	}
}

func TestContestCreate_Password(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	adminID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")

	now := time.Now().UTC()
	svc := NewContestService(store.New(conn), clockwork.NewFakeClockAt(now), cfg.BcryptCost)

	contest, err := svc.Create(context.Background(), adminID, models.CreateContestRequest{
		Name:      "Secret",
		Ticker:    "TSLA",
		StartDate: now.Add(time.Hour),
		EndDate:   now.Add(2 * time.Hour),
		Password:  "letmein",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !contest.Private {
		t.Error("Expected contest with password to be private")
	}
	if contest.PasswordHash == "letmein" || contest.PasswordHash == "" {
		t.Errorf("Expected a digest, got %q", contest.PasswordHash)
	}
	if err := auth.CompareSecret(contest.PasswordHash, "letmein"); err != nil {
		t.Errorf("Digest does not verify: %v", err)
	}

	// The secret never reaches JSON
	contests, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	body, _ := json.Marshal(contests)
	if strings.Contains(strings.ToLower(string(body)), "password") || strings.Contains(string(body), contest.PasswordHash) {
		t.Errorf("List leaked the password: %s", body)
	}
}

func TestContestList_OrderedByEndDateDesc(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	adminID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")

	now := time.Now().UTC()
	soon := testutil.CreateTestContest(t, conn, adminID, now.Add(time.Hour), now.Add(2*time.Hour))
	late := testutil.CreateTestContest(t, conn, adminID, now.Add(time.Hour), now.Add(72*time.Hour))
	mid := testutil.CreateTestContest(t, conn, adminID, now.Add(time.Hour), now.Add(24*time.Hour))
	testutil.CreateTestPick(t, conn, mid, adminID, "42.5")

	svc := NewContestService(store.New(conn), clockwork.NewFakeClockAt(now), cfg.BcryptCost)
	contests, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{late, mid, soon}
	if len(contests) != len(want) {
		t.Fatalf("Expected %d contests, got %d", len(want), len(contests))
	}
	for i, id := range want {
		if contests[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, contests[i].ID)
		}
		if contests[i].Admin.DisplayName != "Alice" {
			t.Errorf("Expected admin display name populated, got %+v", contests[i].Admin)
		}
	}

	if picks := contests[1].Picks; len(picks) != 1 || picks[0].User.DisplayName != "Alice" || !picks[0].Price.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("Expected Alice's pick on the middle contest, got %+v", picks)
	}
	if contests[0].Picks == nil || len(contests[0].Picks) != 0 {
		t.Errorf("Expected empty picks on a contest nobody picked, got %#v", contests[0].Picks)
	}
}

func TestContestGet(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	adminID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")
	bobID, _ := testutil.CreateTestUser(t, conn, cfg, "Bob")

	now := time.Now().UTC()
	contestID := testutil.CreateTestContest(t, conn, adminID, now.Add(time.Hour), now.Add(2*time.Hour))
	testutil.CreateTestPick(t, conn, contestID, bobID, "150.25")

	svc := NewContestService(store.New(conn), clockwork.NewFakeClockAt(now), cfg.BcryptCost)

	t.Run("populated", func(t *testing.T) {
		detail, err := svc.Get(context.Background(), contestID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.Admin.DisplayName != "Alice" {
			t.Errorf("Expected admin Alice, got %q", detail.Admin.DisplayName)
		}
		if len(detail.Picks) != 1 {
			t.Fatalf("Expected 1 pick, got %d", len(detail.Picks))
		}
		if detail.Picks[0].User.DisplayName != "Bob" {
			t.Errorf("Expected pick by Bob, got %q", detail.Picks[0].User.DisplayName)
		}
		if !detail.Picks[0].Price.Equal(decimal.RequireFromString("150.25")) {
			t.Errorf("Expected price 150.25, got %s", detail.Picks[0].Price)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestContestUpdate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	adminID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")
	bobID, _ := testutil.CreateTestUser(t, conn, cfg, "Bob")

	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(24 * time.Hour)
	end := now.Add(48 * time.Hour)
	contestID := testutil.CreateTestContest(t, conn, adminID, start, end)

	clock := clockwork.NewFakeClockAt(now)
	svc := NewContestService(store.New(conn), clock, cfg.BcryptCost)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", adminID, models.ContestUpdate{Name: strPtr("x")})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non admin rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, contestID, bobID, models.ContestUpdate{Name: strPtr("Hijacked")})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("partial update leaves other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{Name: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Name != "Renamed" {
			t.Errorf("Expected name Renamed, got %s", updated.Name)
		}
		if updated.Ticker != "AAPL" {
			t.Errorf("Ticker changed: %s", updated.Ticker)
		}
		if !updated.StartDate.Equal(start) || !updated.EndDate.Equal(end) {
			t.Errorf("Dates changed: %v .. %v", updated.StartDate, updated.EndDate)
		}
		if updated.Private {
			t.Error("Privacy changed")
		}
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		updated, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Name != "Renamed" {
			t.Errorf("Expected unchanged name, got %s", updated.Name)
		}
	})

	t.Run("invalid fields rejected", func(t *testing.T) {
		cases := []struct {
			name   string
			update models.ContestUpdate
			param  string
		}{
			{"blank name", models.ContestUpdate{Name: strPtr(" ")}, "name"},
			{"blank ticker", models.ContestUpdate{Ticker: strPtr("")}, "ticker"},
			{"start in past", models.ContestUpdate{StartDate: timePtr(now.Add(-time.Minute))}, "startDate"},
			{"end before stored start", models.ContestUpdate{EndDate: timePtr(start.Add(-time.Hour))}, "endDate"},
			{"start after stored end", models.ContestUpdate{StartDate: timePtr(end.Add(time.Hour))}, "endDate"},
			{"negative closing price", models.ContestUpdate{ClosingPrice: decPtr("-1")}, "closingPrice"},
			{"closing price before end", models.ContestUpdate{ClosingPrice: decPtr("190.10")}, "closingPrice"},
			{"closing price past four decimals", models.ContestUpdate{ClosingPrice: decPtr("190.12345")}, "closingPrice"},
			{"closing price too large", models.ContestUpdate{ClosingPrice: decPtr("12345678901234567.89")}, "closingPrice"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Update(ctx, contestID, adminID, tc.update)
				var verrs ValidationErrors
				if !errors.As(err, &verrs) {
					t.Fatalf("Expected ValidationErrors, got %v", err)
				}
				if verrs[0].Param != tc.param {
					t.Errorf("Expected param %s, got %s", tc.param, verrs[0].Param)
				}
			})
		}

		// Nothing above may have been written
		got, _ := svc.Get(ctx, contestID)
		if got.Name != "Renamed" || got.Ticker != "AAPL" || !got.StartDate.Equal(start) || !got.EndDate.Equal(end) || got.ClosingPrice != nil {
			t.Errorf("Rejected updates modified the contest: %+v", got.Contest)
		}
	})

	t.Run("move both dates", func(t *testing.T) {
		newStart, newEnd := now.Add(72*time.Hour), now.Add(96*time.Hour)
		updated, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{StartDate: &newStart, EndDate: &newEnd})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !updated.StartDate.Equal(newStart) || !updated.EndDate.Equal(newEnd) {
			t.Errorf("Dates not updated: %v .. %v", updated.StartDate, updated.EndDate)
		}
		end = newEnd
	})

	t.Run("password set and cleared", func(t *testing.T) {
		updated, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{Password: strPtr("s3cret")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !updated.Private || auth.CompareSecret(updated.PasswordHash, "s3cret") != nil {
			t.Error("Expected a private contest with a re-hashed password")
		}

		updated, err = svc.Update(ctx, contestID, adminID, models.ContestUpdate{Password: strPtr("")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Private || updated.PasswordHash != "" {
			t.Error("Expected password cleared and contest public")
		}
	})

	t.Run("closing price after end", func(t *testing.T) {
		clock.Advance(end.Sub(clock.Now()) + time.Minute)

		for _, bad := range []string{"190.12345", "100000000000", "12345678901234567.89"} {
			_, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{ClosingPrice: decPtr(bad)})
			var verrs ValidationErrors
			if !errors.As(err, &verrs) || verrs[0].Msg != MsgClosingPrice {
				t.Errorf("Expected %s rejected with %q, got %v", bad, MsgClosingPrice, err)
			}
		}

		updated, err := svc.Update(ctx, contestID, adminID, models.ContestUpdate{ClosingPrice: decPtr("190.10")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.ClosingPrice == nil || !updated.ClosingPrice.Equal(decimal.RequireFromString("190.10")) {
			t.Errorf("Expected closing price 190.10, got %v", updated.ClosingPrice)
		}
	})
}

func TestContestDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	aliceID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")
	bobID, _ := testutil.CreateTestUser(t, conn, cfg, "Bob")

	now := time.Now().UTC()
	contestID := testutil.CreateTestContest(t, conn, aliceID, now.Add(time.Hour), now.Add(2*time.Hour))
	otherID := testutil.CreateTestContest(t, conn, aliceID, now.Add(time.Hour), now.Add(2*time.Hour))
	testutil.CreateTestPick(t, conn, contestID, bobID, "10")
	testutil.CreateTestPick(t, conn, otherID, bobID, "11")

	svc := NewContestService(store.New(conn), clockwork.NewFakeClockAt(now), cfg.BcryptCost)
	ctx := context.Background()

	if err := svc.Delete(ctx, contestID, bobID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for non-admin, got %v", err)
	}
	if n := testutil.CountRows(t, conn, "contest", "id = $1", contestID); n != 1 {
		t.Fatal("Contest must remain after rejected delete")
	}

	if err := svc.Delete(ctx, "missing", aliceID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, contestID, aliceID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := testutil.CountRows(t, conn, "contest", "id = $1", contestID); n != 0 {
		t.Error("Contest still present after delete")
	}
	if n := testutil.CountRows(t, conn, "pick", "contest_id = $1", contestID); n != 0 {
		t.Errorf("Expected picks to be removed with the contest, found %d", n)
	}
	if n := testutil.CountRows(t, conn, "pick", "contest_id = $1", otherID); n != 1 {
		t.Error("Picks of other contests must survive")
	}
}

func TestContestStandings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	aliceID, _ := testutil.CreateTestUser(t, conn, cfg, "Alice")
	bobID, _ := testutil.CreateTestUser(t, conn, cfg, "Bob")
	carolID, _ := testutil.CreateTestUser(t, conn, cfg, "Carol")

	now := time.Now().UTC()
	contestID := testutil.CreateTestContest(t, conn, aliceID, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	testutil.CreateTestPick(t, conn, contestID, bobID, "150")
	testutil.CreateTestPick(t, conn, contestID, carolID, "158")

	svc := NewContestService(store.New(conn), clockwork.NewFakeClockAt(now), cfg.BcryptCost)
	ctx := context.Background()

	if _, err := svc.Standings(ctx, contestID); !errors.Is(err, ErrNotSettled) {
		t.Fatalf("Expected ErrNotSettled, got %v", err)
	}

	if _, err := svc.Update(ctx, contestID, aliceID, models.ContestUpdate{ClosingPrice: decPtr("157")}); err != nil {
		t.Fatalf("Settling failed: %v", err)
	}

	standings, err := svc.Standings(ctx, contestID)
	if err != nil {
		t.Fatalf("Standings failed: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("Expected 2 standings, got %d", len(standings))
	}
	if standings[0].User.DisplayName != "Carol" || standings[0].Rank != 1 {
		t.Errorf("Expected Carol first, got %+v", standings[0])
	}
	if !standings[1].Distance.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Expected Bob 7 away, got %s", standings[1].Distance)
	}
}
