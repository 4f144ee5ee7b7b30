package aggregate

import "github.com/Veraticus/finsight/internal/model"

// Report bundles every aggregate for one filter.
type Report struct {
	Pivot      *Pivot
	Overview   Overview
	Monthly    []MonthPoint
	Summary    []SummaryRow
	Yearly     []YearPoint
	Categories []CategoryTotal
	Highlights Highlights
	Trend      Trend
}

// Compute builds the report for the filter's year. The yearly series is
// always computed over the full ledger.
func Compute(full *model.Ledger, filter model.Filter) *Report {
	view := full.ForYear(filter.Year)
	monthly := Monthly(view)
	return &Report{
		Overview:   ComputeOverview(full, filter.Year),
		Monthly:    monthly,
		Summary:    MonthlySummary(monthly),
		Yearly:     Yearly(full),
		Categories: Categories(view),
		Pivot:      NewPivot(view),
		Highlights: ComputeHighlights(monthly, view.Months()),
		Trend:      ExpenseTrend(monthly),
	}
}
