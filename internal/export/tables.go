package export

import (
	"strconv"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/anomaly"
	"github.com/Veraticus/finsight/internal/cluster"
	"github.com/Veraticus/finsight/internal/compare"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/pipeline"
)

// TransactionsTable lists the ledger, newest first.
func TransactionsTable(ledger *model.Ledger) Table {
	t := Table{
		Name:   "transactions",
		Header: []string{"date", "description", "category", "amount", "is_income", "actual_amount", "month", "year", "source"},
	}
	txns := ledger.Transactions()
	for i := len(txns) - 1; i >= 0; i-- {
		txn := txns[i]
		t.Rows = append(t.Rows, []any{
			txn.Date, txn.Description, txn.Category, txn.Amount,
			txn.IsIncome(), txn.ActualAmount(), txn.Month(), txn.Year(), txn.Source,
		})
	}
	return t
}

// OverviewTable is the overview snapshot as metric/value pairs.
func OverviewTable(o aggregate.Overview) Table {
	return Table{
		Name:   "overview_snapshot",
		Header: []string{"metric", "value"},
		Rows: [][]any{
			{"lifetime_net", o.Totals.Net},
			{"total_income", o.Totals.Income},
			{"total_expense", o.Totals.Expense},
			{"current_month", o.CurrentMonth},
			{"current_month_net", o.CurrentSavings},
			{"mom_change", o.MonthOverMonth},
			{"ytd_net", o.YearNet},
			{"yoy_change", o.YearOverYear},
			{"top_category", o.TopCategory},
			{"top_category_total", o.TopCategoryTotal},
			{"top_category_peak_month", o.TopCategoryPeak},
		},
	}
}

// MonthlySummaryTable is the month-by-month summary.
func MonthlySummaryTable(rows []aggregate.SummaryRow) Table {
	t := Table{
		Name: "monthly_summary",
		Header: []string{"month", "income", "expense", "savings",
			"expense_diff", "expense_pct_change", "savings_diff", "savings_pct_change"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Month, r.Income, r.Expense, r.Savings,
			r.ExpenseDelta, r.ExpenseChange, r.SavingsDelta, r.SavingsChange,
		})
	}
	return t
}

// YearlyTable is the yearly series with each year's change.
func YearlyTable(changes []compare.YearChange, points []aggregate.YearPoint) Table {
	t := Table{Name: "yearly", Header: []string{"year", "income", "expense", "net", "yoy_change"}}
	for i, p := range points {
		change := model.Percent{}
		if i < len(changes) {
			change = changes[i].Change
		}
		t.Rows = append(t.Rows, []any{strconv.Itoa(p.Year), p.Income, p.Expense, p.Net, change})
	}
	return t
}

// CategoriesTable is the ranked category totals.
func CategoriesTable(cats []aggregate.CategoryTotal) Table {
	t := Table{Name: "category_totals", Header: []string{"category", "net", "total"}}
	for _, c := range cats {
		t.Rows = append(t.Rows, []any{c.Category, c.Net, c.Gross})
	}
	return t
}

// DrilldownTable is one month's category breakdown.
func DrilldownTable(month model.Month, cats []aggregate.CategoryTotal) Table {
	t := Table{Name: "categories_" + month.String(), Header: []string{"category", "total"}}
	for _, c := range cats {
		t.Rows = append(t.Rows, []any{c.Category, c.Gross})
	}
	return t
}

// ComparedMonthsTable is the selected-month comparison.
func ComparedMonthsTable(c *compare.MonthComparison) Table {
	t := Table{Name: "compared_months", Header: []string{"month", "net", "diff_from_prev"}}
	if c == nil {
		return t
	}
	for _, m := range c.Months {
		t.Rows = append(t.Rows, []any{m.Month, m.Net, m.Difference})
	}
	return t
}

// AnomaliesTable lists the outliers, most anomalous first.
func AnomaliesTable(r *anomaly.Report) Table {
	t := Table{Name: "anomalies", Header: []string{"date", "description", "actual_amount", "category", "anomaly_score"}}
	if r == nil {
		return t
	}
	for _, e := range r.Anomalies() {
		t.Rows = append(t.Rows, []any{
			e.Transaction.Date, e.Transaction.Description, e.Transaction.ActualAmount(),
			e.Transaction.Category, e.Score,
		})
	}
	return t
}

// ClusteredTransactionsTable lists every transaction with its cluster.
func ClusteredTransactionsTable(r *cluster.Report) Table {
	t := Table{Name: "clustered_transactions", Header: []string{"date", "description", "category", "actual_amount", "cluster"}}
	if r == nil {
		return t
	}
	for _, a := range r.Transactions {
		t.Rows = append(t.Rows, []any{
			a.Transaction.Date, a.Transaction.Description, a.Transaction.Category,
			a.Transaction.ActualAmount(), a.Cluster,
		})
	}
	return t
}

// ClusterSummaryTable is the per-cluster summary ranked by mean.
func ClusterSummaryTable(r *cluster.Report) Table {
	t := Table{Name: "cluster_summary", Header: []string{"cluster", "count", "mean", "sum"}}
	if r == nil {
		return t
	}
	for _, s := range r.Summaries {
		t.Rows = append(t.Rows, []any{s.Cluster, s.Count, s.Mean, s.Sum})
	}
	return t
}

// MonthlyClustersTable lists month-mode assignments.
func MonthlyClustersTable(r *cluster.Report) Table {
	t := Table{Name: "monthly_clusters", Header: []string{"month", "actual_amount", "cluster"}}
	if r == nil {
		return t
	}
	for _, m := range r.Months {
		t.Rows = append(t.Rows, []any{m.Month, m.Net, m.Cluster})
	}
	return t
}

// YearComparisonTable is the side-by-side category table of two years.
func YearComparisonTable(c *compare.YearComparison) Table {
	a, b := strconv.Itoa(c.YearA), strconv.Itoa(c.YearB)
	t := Table{
		Name:   "year_compare_" + a + "_vs_" + b,
		Header: []string{"category", a, b},
	}
	for _, row := range c.Categories {
		t.Rows = append(t.Rows, []any{row.Category, row.A, row.B})
	}
	return t
}

// InsightsTable is the insights summary.
func InsightsTable(insights []aggregate.Insight) Table {
	t := Table{Name: "insights_table", Header: []string{"Insight", "Detail", "Value"}}
	for _, in := range insights {
		t.Rows = append(t.Rows, []any{in.Insight, in.Detail, in.Value})
	}
	return t
}

// AnalysisTables collects every table an analysis produced. Components that
// failed or lacked data are left out.
func AnalysisTables(ledger *model.Ledger, a *pipeline.Analysis) []Table {
	tables := []Table{TransactionsTable(ledger.ForYear(a.Filter.Year))}

	if agg := a.Aggregates; agg != nil {
		tables = append(tables,
			OverviewTable(agg.Overview),
			MonthlySummaryTable(agg.Summary),
			YearlyTable(a.YearOverYear, agg.Yearly),
			CategoriesTable(agg.Categories),
			InsightsTable(aggregate.Insights(agg.Overview)),
		)
	}
	if a.Months != nil && a.Months.Insufficient == nil {
		tables = append(tables, ComparedMonthsTable(a.Months))
	}
	if a.Anomalies != nil && a.Anomalies.Insufficient == nil {
		tables = append(tables, AnomaliesTable(a.Anomalies))
	}
	if c := a.Clusters; c != nil && c.Insufficient == nil {
		if c.Mode == model.ClusterMonths {
			tables = append(tables, MonthlyClustersTable(c))
		} else {
			tables = append(tables, ClusteredTransactionsTable(c), ClusterSummaryTable(c))
		}
	}
	return tables
}
