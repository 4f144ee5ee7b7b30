package aggregate

import "github.com/Veraticus/finsight/internal/model"

// SummaryRow is one month of the month-by-month summary with changes
// against the previous month. The first month reports zero change.
type SummaryRow struct {
	MonthPoint
	ExpenseChange model.Percent
	SavingsChange model.Percent
	ExpenseDelta  float64
	SavingsDelta  float64
}

// MonthlySummary derives deltas and percent changes from a monthly series.
func MonthlySummary(points []MonthPoint) []SummaryRow {
	rows := make([]SummaryRow, len(points))
	for i, p := range points {
		rows[i] = SummaryRow{MonthPoint: p}
		if i == 0 {
			rows[i].ExpenseChange = model.Percent{Valid: true}
			rows[i].SavingsChange = model.Percent{Valid: true}
			continue
		}
		prev := points[i-1]
		rows[i].ExpenseDelta = p.Expense - prev.Expense
		rows[i].SavingsDelta = p.Savings - prev.Savings
		rows[i].ExpenseChange = model.PercentChange(p.Expense, prev.Expense)
		rows[i].SavingsChange = model.PercentChange(p.Savings, prev.Savings)
	}
	return rows
}

// Extremum is a month and its value. A zero Month means there was no data.
type Extremum struct {
	Month model.Month
	Value float64
}

// Label renders the month or the not-applicable marker.
func (e Extremum) Label() string {
	return MonthLabel(e.Month)
}

// Highlights are the best and worst months of a monthly series.
type Highlights struct {
	WorstSpend  Extremum // highest expense
	BestSpend   Extremum // lowest expense
	BestSaving  Extremum // highest savings
	WorstSaving Extremum // lowest savings
}

// ComputeHighlights scans the series for the months with data. Filler
// months in a zero-filled series never win. The earliest month wins ties.
func ComputeHighlights(points []MonthPoint, observed []model.Month) Highlights {
	seen := make(map[model.Month]bool, len(observed))
	for _, m := range observed {
		seen[m] = true
	}

	var h Highlights
	first := true
	for _, p := range points {
		if !seen[p.Month] {
			continue
		}
		if first {
			h.WorstSpend = Extremum{p.Month, p.Expense}
			h.BestSpend = Extremum{p.Month, p.Expense}
			h.BestSaving = Extremum{p.Month, p.Savings}
			h.WorstSaving = Extremum{p.Month, p.Savings}
			first = false
			continue
		}
		if p.Expense > h.WorstSpend.Value {
			h.WorstSpend = Extremum{p.Month, p.Expense}
		}
		if p.Expense < h.BestSpend.Value {
			h.BestSpend = Extremum{p.Month, p.Expense}
		}
		if p.Savings > h.BestSaving.Value {
			h.BestSaving = Extremum{p.Month, p.Savings}
		}
		if p.Savings < h.WorstSaving.Value {
			h.WorstSaving = Extremum{p.Month, p.Savings}
		}
	}
	return h
}

// Trend is the change in monthly expense from the first to the last month.
type Trend struct {
	Change float64
}

// Increasing reports whether expenses grew across the period.
func (t Trend) Increasing() bool {
	return t.Change > 0
}

// ExpenseTrend compares the last month's expense to the first's. A series
// of fewer than two months has no trend.
func ExpenseTrend(points []MonthPoint) Trend {
	if len(points) < 2 {
		return Trend{}
	}
	return Trend{Change: points[len(points)-1].Expense - points[0].Expense}
}

// MonthLabel formats a month, or the not-applicable marker for the zero
// month.
func MonthLabel(m model.Month) string {
	if m.IsZero() {
		return model.NotApplicable
	}
	return m.String()
}
