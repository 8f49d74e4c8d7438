// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/stockpick/models"
)

// RankPicks orders picks by distance from the closing price
func RankPicks(closing decimal.Decimal, picks []models.PickSummary) []models.Standing {
	standings := make([]models.Standing, len(picks))
	for i, p := range picks {
		standings[i] = models.Standing{
			PickID:   p.ID,
			User:     p.User,
			Price:    p.Price,
			Distance: p.Price.Sub(closing).Abs(),
		}
	}

	submitted := make(map[string]int64, len(picks))
	for _, p := range picks {
		submitted[p.ID] = p.SubmittedAt.UnixNano()
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]

		// 1. Closest to the closing price wins
		if c := a.Distance.Cmp(b.Distance); c != 0 {
			return c < 0
		}

		// 2. Earlier submission wins
		if submitted[a.PickID] != submitted[b.PickID] {
			return submitted[a.PickID] < submitted[b.PickID]
		}

		// 3. Stable tie-breaking by pick ID (ascending)
		return a.PickID < b.PickID
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}
