package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NotApplicable is rendered for percent changes without a usable base.
const NotApplicable = "N/A"

// Percent is a percent change that may be undefined.
type Percent struct {
	Value float64
	Valid bool
}

// PercentChange returns (current-previous)/previous as a percentage rounded
// to two decimals. A zero previous value yields the not-applicable sentinel.
func PercentChange(current, previous float64) Percent {
	if previous == 0 || !finite(current) || !finite(previous) {
		return Percent{}
	}
	change := decimal.NewFromFloat(current).
		Sub(decimal.NewFromFloat(previous)).
		Div(decimal.NewFromFloat(previous)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return Percent{Value: change.InexactFloat64(), Valid: true}
}

// String renders the change as "10.0%", "-12.35%" or "N/A".
func (p Percent) String() string {
	if !p.Valid {
		return NotApplicable
	}
	s := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
