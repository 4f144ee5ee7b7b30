package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Classify(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		isIncome   bool
		wantActual float64
	}{
		{name: "income keeps magnitude", amount: 1000, isIncome: true, wantActual: 1000},
		{name: "negative income becomes positive", amount: -250.5, isIncome: true, wantActual: 250.5},
		{name: "expense is negated", amount: 200, isIncome: false, wantActual: -200},
		{name: "negative expense stays negative", amount: -75, isIncome: false, wantActual: -75},
		{name: "NaN contributes zero", amount: math.NaN(), isIncome: false, wantActual: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := Transaction{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: tt.amount}
			got := txn.Classify(tt.isIncome)

			assert.True(t, got.Classified())
			assert.Equal(t, tt.isIncome, got.IsIncome())
			assert.InDelta(t, tt.wantActual, got.ActualAmount(), 1e-9)
			assert.False(t, txn.Classified(), "original must not change")

			if got.ActualAmount() != 0 {
				assert.Equal(t, tt.isIncome, got.ActualAmount() > 0)
				assert.InDelta(t, math.Abs(tt.amount), math.Abs(got.ActualAmount()), 1e-9)
			}
		})
	}
}

func TestTransaction_Buckets(t *testing.T) {
	txn := Transaction{Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, Month{Year: 2023, Month: time.December}, txn.Month())
	assert.Equal(t, 2023, txn.Year())
	assert.Equal(t, "2023-12", txn.Month().String())
}

func TestTransaction_Hash(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Coffee",
		Category:    "Food",
		Amount:      4.5,
	}
	same := base
	same.Source = "other.csv"
	different := base
	different.Amount = 4.75

	assert.Equal(t, base.Hash(), same.Hash())
	assert.NotEqual(t, base.Hash(), different.Hash())
}

func TestMonthSpan(t *testing.T) {
	first := Month{Year: 2023, Month: time.November}
	last := Month{Year: 2024, Month: time.February}

	span := MonthSpan(first, last)

	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, monthStrings(span))
	assert.Nil(t, MonthSpan(last, first))
	assert.Equal(t, []int{2021, 2022, 2023}, YearSpan(2021, 2023))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-07")
	assert.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.July}, m)

	_, err = ParseMonth("July 2024")
	assert.Error(t, err)
}

func monthStrings(months []Month) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.String()
	}
	return out
}
