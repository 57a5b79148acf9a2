// Package types holds the decimal aliases used for course prices, payments
// and session hours, plus the rounding helpers that keep totals exact.
package types

import "github.com/shopspring/decimal"

// Money is baht with full precision.
type Money = decimal.Decimal

// Hours counts teaching hours.
type Hours = decimal.Decimal

// MustMoney parses a literal and panics on malformed input. Tests and
// constants only.
func MustMoney(s string) Money { return decimal.RequireFromString(s) }

func Zero() Money { return decimal.Zero }

// ClampZero floors d at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}

// SafeDiv is a/b rounded to places, zero unless b is positive.
func SafeDiv(a, b decimal.Decimal, places int32) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.DivRound(b, places)
}

// SplitEvenly cuts total into n truncated parts. The last part absorbs the
// remainder so the parts sum to total exactly.
func SplitEvenly(total decimal.Decimal, n int, places int32) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	part := total.Div(decimal.NewFromInt(int64(n))).Truncate(places)
	parts := make([]decimal.Decimal, n)
	for i := range n - 1 {
		parts[i] = part
	}
	parts[n-1] = total.Sub(part.Mul(decimal.NewFromInt(int64(n - 1))))
	return parts
}
