package model

import (
	"testing"
	"time"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearFilter(t *testing.T) {
	all, err := ParseYearFilter("All")
	require.NoError(t, err)
	assert.True(t, all.All())
	assert.Equal(t, "All", all.String())

	y, err := ParseYearFilter(" 2024 ")
	require.NoError(t, err)
	assert.False(t, y.All())
	assert.Equal(t, 2024, y.Year())

	_, err = ParseYearFilter("last year")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Filter)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Filter) {}},
		{name: "lowest contamination", modify: func(f *Filter) { f.Contamination = 0.001 }},
		{name: "contamination too high", modify: func(f *Filter) { f.Contamination = 0.25 }, wantErr: true},
		{name: "contamination zero", modify: func(f *Filter) { f.Contamination = 0 }, wantErr: true},
		{name: "one cluster", modify: func(f *Filter) { f.ClusterCount = 1 }, wantErr: true},
		{name: "six clusters", modify: func(f *Filter) { f.ClusterCount = 6 }},
		{name: "seven clusters", modify: func(f *Filter) { f.ClusterCount = 7 }, wantErr: true},
		{name: "month mode", modify: func(f *Filter) { f.ClusterMode = ClusterMonths }},
		{name: "unknown mode", modify: func(f *Filter) { f.ClusterMode = "weeks" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter()
			tt.modify(&f)
			err := f.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilter_WithSelectedMonths(t *testing.T) {
	mar := Month{Year: 2024, Month: time.March}
	jan := Month{Year: 2024, Month: time.January}
	dec := Month{Year: 2023, Month: time.December}

	f := DefaultFilter().WithSelectedMonths([]Month{mar, jan, mar, dec})

	assert.Equal(t, []Month{dec, jan, mar}, f.SelectedMonths())
}

func TestFilter_SelectedMonthsIsACopy(t *testing.T) {
	jan := Month{Year: 2024, Month: time.January}
	feb := Month{Year: 2024, Month: time.February}
	input := []Month{feb, jan}

	f := DefaultFilter().WithSelectedMonths(input)
	input[0] = Month{Year: 1999, Month: time.July}
	got := f.SelectedMonths()
	got[0] = Month{Year: 1999, Month: time.July}

	assert.Equal(t, []Month{jan, feb}, f.SelectedMonths())
	assert.Nil(t, DefaultFilter().SelectedMonths())
}

func TestLedger_ForYear(t *testing.T) {
	ledger := NewLedger([]Transaction{
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 3},
		{Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), Amount: 1},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 2},
	})

	assert.Equal(t, []int{2023, 2024}, ledger.Years())
	assert.Equal(t, 1.0, ledger.At(0).Amount, "ledger is date ordered")

	filtered := ledger.ForYear(ForYear(2024))
	assert.Equal(t, 2, filtered.Len())
	assert.Equal(t, 3, ledger.Len())
	assert.Same(t, ledger, ledger.ForYear(YearAll))
	assert.Equal(t, 0, ledger.ForYear(ForYear(1999)).Len())
}
