// Package compare computes year-over-year and month-over-month deltas.
package compare

import (
	"sort"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
)

// MinMonths is how many months a month comparison needs.
const MinMonths = 2

// CategoryRow is one category's net in each compared year.
type CategoryRow struct {
	Category string
	A        float64
	B        float64
}

// YearComparison contrasts two years over the full ledger.
type YearComparison struct {
	Categories []CategoryRow
	Change     model.Percent
	A          aggregate.Totals
	B          aggregate.Totals
	Difference float64
	YearA      int
	YearB      int
}

// Years compares year a (the base) with year b. The active year filter
// never applies: callers pass the full ledger. Categories missing from one
// year are zero-filled and rows are sorted by name.
func Years(full *model.Ledger, a, b int) *YearComparison {
	yearly := aggregate.Yearly(full)
	c := &YearComparison{
		YearA: a,
		YearB: b,
		A:     aggregate.YearTotals(yearly, a),
		B:     aggregate.YearTotals(yearly, b),
	}
	c.Difference = c.B.Net - c.A.Net
	c.Change = model.PercentChange(c.B.Net, c.A.Net)

	rows := make(map[string]*CategoryRow)
	for _, t := range full.Transactions() {
		if t.Year() != a && t.Year() != b {
			continue
		}
		row, ok := rows[t.Category]
		if !ok {
			row = &CategoryRow{Category: t.Category}
			rows[t.Category] = row
		}
		// a == b puts the same amount in both columns.
		if t.Year() == a {
			row.A += t.ActualAmount()
		}
		if t.Year() == b {
			row.B += t.ActualAmount()
		}
	}
	for _, row := range rows {
		c.Categories = append(c.Categories, *row)
	}
	sort.Slice(c.Categories, func(i, j int) bool {
		return c.Categories[i].Category < c.Categories[j].Category
	})
	return c
}

// YearChange is one year's net against the year before it.
type YearChange struct {
	Change      model.Percent
	Year        int
	Net         float64
	PreviousNet float64
}

// YearOverYear returns the change for every year in the continuous span of
// the full ledger. The first year has no base and reports not-applicable.
func YearOverYear(full *model.Ledger) []YearChange {
	yearly := aggregate.Yearly(full)
	out := make([]YearChange, len(yearly))
	for i, p := range yearly {
		out[i] = YearChange{Year: p.Year, Net: p.Net}
		if i > 0 {
			out[i].PreviousNet = yearly[i-1].Net
			out[i].Change = model.PercentChange(p.Net, yearly[i-1].Net)
		}
	}
	return out
}

// MonthDelta is one selected month's net and its difference from the
// previous selected month.
type MonthDelta struct {
	Month      model.Month
	Net        float64
	Difference float64
}

// MonthComparison is the result of comparing selected months.
type MonthComparison struct {
	Insufficient *common.InsufficientDataError
	Months       []MonthDelta
}

// Months compares the net of the selected months in chronological order.
// Months without transactions count as zero. Fewer than MinMonths distinct
// months yields a result with Insufficient set.
func Months(ledger *model.Ledger, selected []model.Month) *MonthComparison {
	months := dedupeMonths(selected)
	if len(months) < MinMonths {
		return &MonthComparison{Insufficient: &common.InsufficientDataError{
			Component: "month comparison",
			Have:      len(months),
			Need:      MinMonths,
		}}
	}

	net := make(map[model.Month]float64, len(months))
	for _, t := range ledger.Transactions() {
		net[t.Month()] += t.ActualAmount()
	}

	c := &MonthComparison{Months: make([]MonthDelta, len(months))}
	for i, m := range months {
		c.Months[i] = MonthDelta{Month: m, Net: net[m]}
		if i > 0 {
			c.Months[i].Difference = net[m] - net[months[i-1]]
		}
	}
	return c
}

func dedupeMonths(selected []model.Month) []model.Month {
	seen := make(map[model.Month]bool, len(selected))
	var out []model.Month
	for _, m := range selected {
		if m.IsZero() || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
