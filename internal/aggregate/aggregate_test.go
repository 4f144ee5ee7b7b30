package aggregate

import (
	"testing"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(t *testing.T, s string) model.Month {
	t.Helper()
	m, err := model.ParseMonth(s)
	require.NoError(t, err)
	return m
}

func TestComputeTotals(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Income("2024-01-05", 1000, "Salary credited", testutil.CategoryIncome).
		Expense("2024-01-09", 200, "Grocery", testutil.CategoryFood).
		Build()

	got := ComputeTotals(ledger)

	assert.InDelta(t, 1000.0, got.Income, 1e-9)
	assert.InDelta(t, 200.0, got.Expense, 1e-9)
	assert.InDelta(t, 800.0, got.Net, 1e-9)
}

func TestMonthly_ContinuousSpan(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Expense("2023-11-03", 50, "a", testutil.CategoryFood).
		Income("2024-02-01", 300, "salary", testutil.CategoryIncome).
		Expense("2024-02-11", 70, "b", testutil.CategoryFood).
		Build()

	points := Monthly(ledger)

	require.Len(t, points, 4)
	for i, want := range []string{"2023-11", "2023-12", "2024-01", "2024-02"} {
		assert.Equal(t, want, points[i].Month.String())
	}
	assert.InDelta(t, -50.0, points[0].Savings, 1e-9)
	assert.Equal(t, MonthPoint{Month: month(t, "2023-12")}, points[1])
	assert.InDelta(t, 300.0, points[3].Income, 1e-9)
	assert.InDelta(t, 70.0, points[3].Expense, 1e-9)
	assert.InDelta(t, 230.0, points[3].Savings, 1e-9)
}

func TestYearly_ContinuousSpan(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Income("2021-03-01", 100, "salary", testutil.CategoryIncome).
		Expense("2023-03-01", 40, "rent", testutil.CategoryRent).
		Build()

	points := Yearly(ledger)

	require.Len(t, points, 3)
	assert.Equal(t, []int{2021, 2022, 2023}, []int{points[0].Year, points[1].Year, points[2].Year})
	assert.Equal(t, Totals{}, points[1].Totals)
	assert.InDelta(t, -40.0, points[2].Net, 1e-9)
	assert.InDelta(t, 100.0, YearTotals(points, 2021).Income, 1e-9)
	assert.Equal(t, Totals{}, YearTotals(points, 1999))
}

func TestHighlights_WorstAndBestSpend(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		MonthlyExpenses("2024-01", testutil.CategoryFood, 100, 300, 50).
		Build()

	h := ComputeHighlights(Monthly(ledger), ledger.Months())

	assert.Equal(t, "2024-02", h.WorstSpend.Label())
	assert.InDelta(t, 300.0, h.WorstSpend.Value, 1e-9)
	assert.Equal(t, "2024-03", h.BestSpend.Label())
	assert.InDelta(t, 50.0, h.BestSpend.Value, 1e-9)
	assert.Equal(t, "2024-03", h.BestSaving.Label())
	assert.Equal(t, "2024-02", h.WorstSaving.Label())
}

func TestHighlights_TiesKeepEarliest(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		MonthlyExpenses("2024-01", testutil.CategoryFood, 100, 100).
		Build()

	h := ComputeHighlights(Monthly(ledger), ledger.Months())

	assert.Equal(t, "2024-01", h.WorstSpend.Label())
	assert.Equal(t, "2024-01", h.BestSpend.Label())
}

func TestHighlights_SkipsGapMonths(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Expense("2024-01-10", 100, "Groceries", testutil.CategoryFood).
		Expense("2024-03-10", 300, "Groceries", testutil.CategoryFood).
		Build()

	monthly := Monthly(ledger)
	require.Len(t, monthly, 3)
	h := ComputeHighlights(monthly, ledger.Months())

	assert.Equal(t, "2024-01", h.BestSpend.Label())
	assert.InDelta(t, 100.0, h.BestSpend.Value, 1e-9)
	assert.Equal(t, "2024-03", h.WorstSpend.Label())
	assert.Equal(t, "2024-01", h.BestSaving.Label())
	assert.Equal(t, "2024-03", h.WorstSaving.Label())

	report := Compute(ledger, model.DefaultFilter())
	assert.Equal(t, "2024-01", report.Highlights.BestSpend.Label())
	assert.Len(t, report.Monthly, 3)
}

func TestHighlights_Empty(t *testing.T) {
	h := ComputeHighlights(nil, nil)

	assert.Equal(t, MonthLabel(model.Month{}), h.BestSpend.Label())
}

func TestMonthlySummary(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		MonthlyExpenses("2024-01", testutil.CategoryFood, 100, 300, 50, 0, 20).
		Build()

	rows := MonthlySummary(Monthly(ledger))

	require.Len(t, rows, 5)
	assert.Equal(t, "0.0%", rows[0].ExpenseChange.String())
	assert.InDelta(t, 0.0, rows[0].ExpenseDelta, 1e-9)
	assert.InDelta(t, 200.0, rows[1].ExpenseDelta, 1e-9)
	assert.Equal(t, "200.0%", rows[1].ExpenseChange.String())
	assert.Equal(t, "-83.33%", rows[2].ExpenseChange.String())
	assert.Equal(t, "-100.0%", rows[3].ExpenseChange.String())
	assert.Equal(t, model.NotApplicable, rows[4].ExpenseChange.String())
	assert.InDelta(t, -20.0, rows[4].SavingsDelta, 1e-9)
}

func TestExpenseTrend(t *testing.T) {
	up := testutil.NewLedgerBuilder(t).MonthlyExpenses("2024-01", testutil.CategoryFood, 100, 20, 150).Build()
	down := testutil.NewLedgerBuilder(t).MonthlyExpenses("2024-01", testutil.CategoryFood, 100, 500, 50).Build()
	single := testutil.NewLedgerBuilder(t).MonthlyExpenses("2024-01", testutil.CategoryFood, 100).Build()

	assert.True(t, ExpenseTrend(Monthly(up)).Increasing())
	assert.InDelta(t, 50.0, ExpenseTrend(Monthly(up)).Change, 1e-9)
	assert.False(t, ExpenseTrend(Monthly(down)).Increasing())
	assert.Equal(t, Trend{}, ExpenseTrend(Monthly(single)))
}

func TestCategoriesAndPivot(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Income("2024-01-01", 900, "salary", testutil.CategoryIncome).
		Expense("2024-01-05", 300, "rent", testutil.CategoryRent).
		Expense("2024-01-07", 40, "lunch", testutil.CategoryFood).
		Income("2024-02-02", 10, "food refund", testutil.CategoryFood).
		Expense("2024-02-05", 1200, "rent", testutil.CategoryRent).
		Build()

	cats := Categories(ledger)
	require.Len(t, cats, 3)
	assert.Equal(t, testutil.CategoryRent, cats[0].Category)
	assert.InDelta(t, -1500.0, cats[0].Net, 1e-9)
	assert.Equal(t, testutil.CategoryIncome, cats[1].Category)
	assert.Equal(t, testutil.CategoryFood, cats[2].Category)
	assert.InDelta(t, -30.0, cats[2].Net, 1e-9)
	assert.InDelta(t, 50.0, cats[2].Gross, 1e-9)

	pivot := NewPivot(ledger)
	assert.Equal(t, []string{testutil.CategoryFood, testutil.CategoryIncome, testutil.CategoryRent}, pivot.Categories)
	assert.Len(t, pivot.Months, 2)
	assert.InDelta(t, -300.0, pivot.Get(month(t, "2024-01"), testutil.CategoryRent), 1e-9)
	assert.InDelta(t, 0.0, pivot.Get(month(t, "2024-02"), testutil.CategoryIncome), 1e-9)
	assert.False(t, pivot.Has(month(t, "2024-02"), testutil.CategoryIncome))

	peak, ok := pivot.PeakMonth(testutil.CategoryRent)
	require.True(t, ok)
	assert.Equal(t, "2024-02", peak.String())
	_, ok = pivot.PeakMonth("Unknown")
	assert.False(t, ok)

	drill := Drilldown(ledger, month(t, "2024-01"))
	require.Len(t, drill, 3)
	assert.Equal(t, []string{testutil.CategoryIncome, testutil.CategoryRent, testutil.CategoryFood},
		[]string{drill[0].Category, drill[1].Category, drill[2].Category})
	assert.InDelta(t, 300.0, drill[1].Gross, 1e-9)
	assert.Empty(t, Drilldown(ledger, month(t, "2030-01")))
}

func TestComputeOverview(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Income("2023-06-01", 5000, "salary", testutil.CategoryIncome).
		Income("2024-01-05", 8000, "salary", testutil.CategoryIncome).
		Expense("2024-02-01", 2000, "rent", testutil.CategoryRent).
		Build()

	t.Run("single year", func(t *testing.T) {
		o := ComputeOverview(ledger, model.ForYear(2024))

		assert.InDelta(t, 8000.0, o.Totals.Income, 1e-9)
		assert.InDelta(t, 2000.0, o.Totals.Expense, 1e-9)
		assert.Equal(t, "2024-02", o.CurrentMonth.String())
		assert.Equal(t, "2024-01", o.PreviousMonth.String())
		assert.InDelta(t, -2000.0, o.CurrentSavings, 1e-9)
		assert.Equal(t, "-125.0%", o.MonthOverMonth.String())
		assert.InDelta(t, 6000.0, o.YearNet, 1e-9)
		assert.Equal(t, "20.0%", o.YearOverYear.String())
		assert.Equal(t, testutil.CategoryIncome, o.TopCategory)
		assert.InDelta(t, 8000.0, o.TopCategoryTotal, 1e-9)
		assert.Equal(t, "2024-01", o.TopCategoryPeak.String())
		assert.Equal(t, 2, o.Transactions)
	})

	t.Run("all years", func(t *testing.T) {
		o := ComputeOverview(ledger, model.YearAll)

		assert.InDelta(t, 11000.0, o.YearNet, 1e-9)
		assert.Equal(t, model.NotApplicable, o.YearOverYear.String())
		assert.Equal(t, 3, o.Transactions)
	})

	t.Run("first year has no base", func(t *testing.T) {
		o := ComputeOverview(ledger, model.ForYear(2023))

		assert.Equal(t, model.NotApplicable, o.YearOverYear.String())
		assert.Equal(t, model.NotApplicable, o.MonthOverMonth.String())
		assert.True(t, o.PreviousMonth.IsZero())
	})
}

func TestCompute_EmptyLedger(t *testing.T) {
	for _, ledger := range []*model.Ledger{nil, model.NewLedger(nil)} {
		var report *Report
		require.NotPanics(t, func() {
			report = Compute(ledger, model.DefaultFilter())
		})

		assert.Equal(t, Totals{}, report.Overview.Totals)
		assert.Equal(t, model.NotApplicable, report.Overview.TopCategory)
		assert.Empty(t, report.Monthly)
		assert.Empty(t, report.Summary)
		assert.Empty(t, report.Yearly)
		assert.Empty(t, report.Categories)
		assert.Equal(t, model.NotApplicable, report.Highlights.WorstSpend.Label())
		assert.InDelta(t, 0.0, report.Highlights.BestSaving.Value, 1e-9)
		assert.Equal(t, Trend{}, report.Trend)

		insights := Insights(report.Overview)
		require.Len(t, insights, 8)
		assert.Equal(t, model.NotApplicable, insights[0].Detail)
		assert.Equal(t, "0.00", insights[0].Value)
		assert.Equal(t, model.NotApplicable, insights[2].Value)
		assert.Equal(t, "0", insights[7].Detail)
	}

	empty := Compute(model.NewLedger(nil), model.Filter{Year: model.ForYear(2024)})
	assert.InDelta(t, 0.0, empty.Overview.YearNet, 1e-9)
	assert.Equal(t, model.NotApplicable, empty.Overview.YearOverYear.String())
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.5, "12.50"},
		{999.999, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-1000, "-1,000.00"},
		{-0.004, "0.00"},
		{-0.006, "-0.01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in))
	}
}
