package cluster

import (
	"math"
	"testing"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoGroups(t *testing.T) *model.Ledger {
	t.Helper()
	return testutil.NewLedgerBuilder(t).
		Expense("2024-05-10", 10, "Coffee", testutil.CategoryFood).
		Expense("2024-05-10", 11, "Snack", testutil.CategoryFood).
		Expense("2024-05-10", 12, "Tea", testutil.CategoryFood).
		Expense("2024-05-10", 1000, "Laptop", testutil.CategoryFood).
		Expense("2024-05-10", 1001, "Phone", testutil.CategoryFood).
		Expense("2024-05-10", 1002, "Camera", testutil.CategoryFood).
		Build()
}

func TestRun_Transactions(t *testing.T) {
	opts := DefaultOptions()
	opts.K = 2

	report, err := Run(twoGroups(t), opts)
	require.NoError(t, err)
	require.Nil(t, report.Insufficient)
	require.Len(t, report.Transactions, 6)

	small, large := report.Transactions[0].Cluster, report.Transactions[3].Cluster
	assert.NotEqual(t, small, large)
	for i, a := range report.Transactions {
		want := small
		if i >= 3 {
			want = large
		}
		assert.Equal(t, want, a.Cluster, a.Transaction.Description)
	}

	require.Len(t, report.Summaries, 2)
	assert.Equal(t, large, report.Summaries[0].Cluster)
	assert.Equal(t, 3, report.Summaries[0].Count)
	assert.InDelta(t, 1001.0, report.Summaries[0].Mean, 1e-9)
	assert.InDelta(t, 3003.0, report.Summaries[0].Sum, 1e-9)
	assert.InDelta(t, 11.0, report.Summaries[1].Mean, 1e-9)

	require.Len(t, report.Samples, 2)
	for _, s := range report.Samples {
		require.Len(t, s.Transactions, 3)
		for i := 1; i < len(s.Transactions); i++ {
			assert.GreaterOrEqual(t,
				math.Abs(s.Transactions[i-1].ActualAmount()),
				math.Abs(s.Transactions[i].ActualAmount()))
		}
	}
}

func TestRun_SamplesCapped(t *testing.T) {
	b := testutil.NewLedgerBuilder(t)
	for _, amount := range []float64{1, 2, 3, 4, 5, 6, 7} {
		b.Expense("2024-01-01", amount, "small", testutil.CategoryFood)
	}
	b.Expense("2024-01-01", 5000, "big", testutil.CategoryFood)
	opts := DefaultOptions()
	opts.K = 2

	report, err := Run(b.Build(), opts)
	require.NoError(t, err)
	for _, s := range report.Samples {
		assert.LessOrEqual(t, len(s.Transactions), SamplesPerCluster)
	}
}

func TestRun_Months(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		MonthlyExpenses("2024-01", testutil.CategoryRent, 100, 110, 5000, 105).
		Build()
	opts := DefaultOptions()
	opts.Mode = model.ClusterMonths
	opts.K = 2

	report, err := Run(ledger, opts)
	require.NoError(t, err)
	require.Nil(t, report.Insufficient)
	require.Len(t, report.Months, 4)
	assert.Equal(t, []string{"amt_abs", "month_num"}, report.Features)

	assert.Equal(t, "2024-01", report.Months[0].Month.String())
	assert.Equal(t, "2024-04", report.Months[3].Month.String())
	assert.InDelta(t, -5000.0, report.Months[2].Net, 1e-9)
	assert.Empty(t, report.Summaries)
}

func TestRun_InsufficientData(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Expense("2024-01-01", 10, "a", testutil.CategoryFood).
		Expense("2024-01-02", 20, "b", testutil.CategoryFood).
		Build()

	tests := []struct {
		name string
		mode model.ClusterMode
		have int
	}{
		{name: "transactions", mode: model.ClusterTransactions, have: 2},
		{name: "months", mode: model.ClusterMonths, have: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = tt.mode
			opts.K = 3

			report, err := Run(ledger, opts)
			require.NoError(t, err)
			require.NotNil(t, report.Insufficient)
			assert.ErrorIs(t, report.Insufficient, common.ErrInsufficientData)
			assert.Equal(t, tt.have, report.Insufficient.Have)
			assert.Equal(t, 3, report.Insufficient.Need)
			assert.Empty(t, report.Transactions)
			assert.Empty(t, report.Months)
		})
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.K = 7
	_, err := Run(twoGroups(t), opts)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	opts = DefaultOptions()
	opts.Mode = "weeks"
	_, err = Run(twoGroups(t), opts)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestRun_Deterministic(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Expense("2024-01-03", 120, "Groceries", testutil.CategoryFood).
		Expense("2024-01-17", 80, "Bus pass", testutil.CategoryTransport).
		Income("2024-01-31", 3000, "Salary", testutil.CategoryIncome).
		Expense("2024-02-01", 1200, "Rent", testutil.CategoryRent).
		Expense("2024-02-11", 95, "Groceries", testutil.CategoryFood).
		Expense("2024-02-20", 60, "Power", testutil.CategoryUtilities).
		Expense("2024-03-02", 700, "Flights", testutil.CategoryTravel).
		Expense("2024-03-15", 45, "Pharmacy", testutil.CategoryHealth).
		Build()

	for _, mode := range []model.ClusterMode{model.ClusterTransactions, model.ClusterMonths} {
		opts := DefaultOptions()
		opts.Mode = mode
		opts.K = 3

		first, err := Run(ledger, opts)
		require.NoError(t, err)
		second, err := Run(ledger, opts)
		require.NoError(t, err)

		assert.Equal(t, first, second, string(mode))
	}
}
