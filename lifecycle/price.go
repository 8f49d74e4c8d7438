// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import "github.com/shopspring/decimal"

// Prices are stored as NUMERIC(20,4). Eleven integer digits plus four
// decimals keeps every accepted value at 15 significant digits, which
// round-trips exactly through SQLite's REAL storage as well as Postgres.
const (
	priceScale     = 4
	priceIntDigits = 11
)

var priceLimit = decimal.New(1, priceIntDigits)

// validPrice reports whether p is non-negative, has at most four decimal
// places, and is below 10^11. Trailing zeros past the fourth place are fine.
func validPrice(p decimal.Decimal) bool {
	if p.IsNegative() {
		return false
	}
	if !p.Equal(p.Truncate(priceScale)) {
		return false
	}
	return p.LessThan(priceLimit)
}
