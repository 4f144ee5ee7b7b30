package aggregate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Veraticus/finsight/internal/model"
)

// Overview is the executive snapshot for one year filter.
type Overview struct {
	Year             model.YearFilter
	CurrentMonth     model.Month
	PreviousMonth    model.Month
	TopCategoryPeak  model.Month
	TopCategory      string
	MonthOverMonth   model.Percent
	YearOverYear     model.Percent
	Totals           Totals
	CurrentSavings   float64
	PreviousSavings  float64
	YearNet          float64
	TopCategoryTotal float64
	Transactions     int
}

// ComputeOverview builds the snapshot. Month and category figures use the
// year-filtered view; year figures always come from the full ledger.
func ComputeOverview(full *model.Ledger, year model.YearFilter) Overview {
	view := full.ForYear(year)
	monthly := Monthly(view)

	o := Overview{
		Year:         year,
		Totals:       ComputeTotals(view),
		TopCategory:  model.NotApplicable,
		Transactions: view.Len(),
	}

	if n := len(monthly); n > 0 {
		o.CurrentMonth = monthly[n-1].Month
		o.CurrentSavings = monthly[n-1].Savings
		if n > 1 {
			o.PreviousMonth = monthly[n-2].Month
			o.PreviousSavings = monthly[n-2].Savings
			o.MonthOverMonth = model.PercentChange(o.CurrentSavings, o.PreviousSavings)
		}
	}

	yearly := Yearly(full)
	if year.All() {
		for _, p := range yearly {
			o.YearNet += p.Net
		}
	} else {
		o.YearNet = YearTotals(yearly, year.Year()).Net
		o.YearOverYear = model.PercentChange(o.YearNet, YearTotals(yearly, year.Year()-1).Net)
	}

	if cats := Categories(view); len(cats) > 0 {
		o.TopCategory = cats[0].Category
		o.TopCategoryTotal = math.Abs(cats[0].Net)
		o.TopCategoryPeak, _ = NewPivot(view).PeakMonth(o.TopCategory)
	}
	return o
}

// Insight is one row of the insights table.
type Insight struct {
	Insight string
	Detail  string
	Value   string
}

// Insights renders the overview as a three-column table.
func Insights(o Overview) []Insight {
	return []Insight{
		{"Current Month (net)", MonthLabel(o.CurrentMonth), Money(o.CurrentSavings)},
		{"Previous Month (net)", MonthLabel(o.PreviousMonth), Money(o.PreviousSavings)},
		{"Month-over-Month Change (savings)", "-", o.MonthOverMonth.String()},
		{"Selected Year (YTD net)", o.Year.String(), Money(o.YearNet)},
		{"Year-over-Year Change (YTD)", "-", o.YearOverYear.String()},
		{"Top Category (net)", o.TopCategory, Money(o.TopCategoryTotal)},
		{"Peak Month for Top Category", MonthLabel(o.TopCategoryPeak), "-"},
		{"Total Transactions (in view)", strconv.Itoa(o.Transactions), "-"},
	}
}

// Money formats an amount with two decimals and thousands separators.
func Money(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	sign := ""
	if v < 0 && s != "0.00" {
		sign = "-"
	}
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return sign + whole + frac
}
