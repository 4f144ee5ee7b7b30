package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	b := testutil.NewLedgerBuilder(t)
	for day := 1; day <= 12; day++ {
		b.Expense(fmt.Sprintf("2024-01-%02d", day), float64(20+day), "Cafe", testutil.CategoryFood)
	}
	b.Income("2024-02-01", 3000, "Salary", testutil.CategoryIncome)
	b.Expense("2024-02-02", 1200, "Rent", testutil.CategoryRent)
	ledger := b.Build()

	filter := model.DefaultFilter().WithSelectedMonths([]model.Month{
		{Year: 2024, Month: 2}, {Year: 2024, Month: 1},
	})

	a, err := Analyze(ledger, filter)
	require.NoError(t, err)

	assert.Empty(t, a.Errors)
	require.NotNil(t, a.Aggregates)
	assert.Len(t, a.Aggregates.Monthly, 2)
	require.NotNil(t, a.Anomalies)
	assert.Nil(t, a.Anomalies.Insufficient)
	assert.Len(t, a.Anomalies.Entries, 14)
	require.NotNil(t, a.Clusters)
	assert.Len(t, a.Clusters.Transactions, 14)
	require.NotNil(t, a.Months)
	assert.Len(t, a.Months.Months, 2)
	assert.Len(t, a.YearOverYear, 1)
}

func TestAnalyze_EmptyLedger(t *testing.T) {
	a, err := Analyze(model.NewLedger(nil), model.DefaultFilter())
	require.NoError(t, err)

	assert.Empty(t, a.Errors)
	assert.NotNil(t, a.Anomalies.Insufficient)
	assert.NotNil(t, a.Clusters.Insufficient)
	assert.Equal(t, model.NotApplicable, a.Aggregates.Overview.TopCategory)
	assert.Nil(t, a.Months)
}

func TestAnalyze_InvalidFilter(t *testing.T) {
	f := model.DefaultFilter()
	f.ClusterCount = 9

	_, err := Analyze(model.NewLedger(nil), f)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestGuard(t *testing.T) {
	assert.NoError(t, guard("ok", func() error { return nil }))

	boom := errors.New("boom")
	err := guard("aggregate", func() error { return boom })
	var ce *common.ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "aggregate", ce.Component)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, common.ErrComputation)

	err = guard("cluster", func() error { panic("index out of range") })
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cluster", ce.Component)
	assert.Contains(t, err.Error(), "index out of range")
}

func TestAnalysis_IsolatesFailures(t *testing.T) {
	a := &Analysis{Errors: make(map[string]error)}

	a.run(ComponentAnomaly, func() error { panic("bad matrix") })
	a.run(ComponentAggregate, func() error { return nil })

	assert.ErrorIs(t, a.Err(ComponentAnomaly), common.ErrComputation)
	assert.NoError(t, a.Err(ComponentAggregate))
}
