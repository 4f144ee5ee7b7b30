package anomaly

import (
	"fmt"
	"math"
	"testing"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spikeLedger(t *testing.T) *model.Ledger {
	t.Helper()
	b := testutil.NewLedgerBuilder(t)
	for day := 1; day <= 20; day++ {
		b.Expense(fmt.Sprintf("2024-03-%02d", day), 40+float64(day%5), "Cafe", testutil.CategoryFood)
	}
	b.Expense("2024-03-21", 50000, "Car dealership", testutil.CategoryFood)
	return b.Build()
}

func TestDetect_InsufficientData(t *testing.T) {
	ledger := testutil.NewLedgerBuilder(t).
		Expense("2024-01-01", 10, "a", testutil.CategoryFood).
		Expense("2024-01-02", 20, "b", testutil.CategoryFood).
		Expense("2024-01-03", 30, "c", testutil.CategoryFood).
		Expense("2024-01-04", 40, "d", testutil.CategoryFood).
		Build()

	report, err := Detect(ledger, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, report.Insufficient)
	assert.ErrorIs(t, report.Insufficient, common.ErrInsufficientData)
	assert.Equal(t, 4, report.Insufficient.Have)
	assert.Equal(t, MinTransactions, report.Insufficient.Need)
	assert.Empty(t, report.Entries)

	report, err = Detect(model.NewLedger(nil), DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, report.Insufficient)
}

func TestDetect_InvalidContamination(t *testing.T) {
	for _, c := range []float64{0, -0.1, 1, 1.5} {
		opts := DefaultOptions()
		opts.Contamination = c
		_, err := Detect(spikeLedger(t), opts)
		assert.ErrorIs(t, err, common.ErrInvalidConfig, "contamination %v", c)
	}
}

func TestDetect_FlagsSpike(t *testing.T) {
	report, err := Detect(spikeLedger(t), DefaultOptions())
	require.NoError(t, err)
	require.Nil(t, report.Insufficient)
	require.Len(t, report.Entries, 21)

	for i := 1; i < len(report.Entries); i++ {
		assert.LessOrEqual(t, report.Entries[i-1].Score, report.Entries[i].Score)
	}

	anomalies := report.Anomalies()
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Car dealership", anomalies[0].Transaction.Description)
	assert.Less(t, anomalies[0].Score, 0.0)
	assert.Equal(t, []string{"amt_feat", "day", "month_num", "cat_Food"}, report.Features)
}

func TestDetect_Deterministic(t *testing.T) {
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

	for _, absolute := range []bool{true, false} {
		opts := DefaultOptions()
		opts.Contamination = 0.2
		opts.UseAbsoluteAmount = absolute

		first, err := Detect(ledger, opts)
		require.NoError(t, err)
		second, err := Detect(ledger, opts)
		require.NoError(t, err)

		require.Len(t, second.Entries, len(first.Entries))
		for i := range first.Entries {
			assert.Equal(t, first.Entries[i].Transaction, second.Entries[i].Transaction)
			assert.Equal(t, math.Float64bits(first.Entries[i].Score), math.Float64bits(second.Entries[i].Score))
			assert.Equal(t, first.Entries[i].Outlier, second.Entries[i].Outlier)
		}
	}
}

func TestOptionsFromFilter(t *testing.T) {
	f := model.DefaultFilter()
	f.Contamination = 0.1
	f.UseAbsoluteAmount = false

	opts := OptionsFromFilter(f)
	assert.InDelta(t, 0.1, opts.Contamination, 1e-12)
	assert.False(t, opts.UseAbsoluteAmount)
	assert.Equal(t, DefaultSeed, opts.Seed)
}
