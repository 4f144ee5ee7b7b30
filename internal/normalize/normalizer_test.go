package normalize

import (
	"testing"
	"time"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/ingest"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasTable_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		want    Mapping
		missing []string
		columns []string
	}{
		{
			name:    "canonical names",
			columns: []string{"Date", "Amount", "Description", "Category"},
			want: Mapping{
				FieldDate:        "Date",
				FieldAmount:      "Amount",
				FieldDescription: "Description",
				FieldCategory:    "Category",
			},
		},
		{
			name:    "aliases with whitespace and case",
			columns: []string{" Transaction_Date ", "AMT", "Narration"},
			want: Mapping{
				FieldDate:        " Transaction_Date ",
				FieldAmount:      "AMT",
				FieldDescription: "Narration",
			},
		},
		{
			name:    "alias priority beats column order",
			columns: []string{"credit", "debit", "timestamp", "date", "tag", "type"},
			want: Mapping{
				FieldDate:     "date",
				FieldAmount:   "debit",
				FieldCategory: "type",
			},
		},
		{
			name:    "earlier column loses to higher alias",
			columns: []string{"credit", "amount", "date"},
			want: Mapping{
				FieldDate:   "date",
				FieldAmount: "amount",
			},
		},
		{
			name:    "missing amount",
			columns: []string{"date", "description"},
			missing: []string{"amount"},
		},
		{
			name:    "missing both",
			columns: []string{"when", "how much"},
			missing: []string{"date", "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultAliases.Resolve(tt.columns)
			if tt.missing != nil {
				var schemaErr *common.SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.ErrorIs(t, err, common.ErrSchema)
				assert.Equal(t, tt.missing, schemaErr.Missing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	ext := &ingest.Extraction{
		Source:  "jan.csv",
		Columns: []string{"Date", "Amount", "Details"},
		Records: []ingest.RawRecord{
			{"Date": "2024-01-05", "Amount": "1,000.00", "Details": "Salary credited"},
			{"Date": "01/07/2024", "Amount": " -45.5 ", "Details": ""},
			{"Date": "not a date", "Amount": "10", "Details": "x"},
			{"Date": "2024-01-09", "Amount": "ten", "Details": "y"},
			{"Date": "2024-01-10", "Amount": "", "Details": "z"},
		},
	}

	res, err := New(DefaultAliases).Normalize(ext)
	require.NoError(t, err)

	require.Len(t, res.Transactions, 2)
	first := res.Transactions[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.InDelta(t, 1000.0, first.Amount, 1e-9)
	assert.Equal(t, "Salary credited", first.Description)
	assert.Equal(t, model.DefaultCategory, first.Category)
	assert.Equal(t, "jan.csv", first.Source)
	assert.Equal(t, model.Month{Year: 2024, Month: time.January}, first.Month())

	second := res.Transactions[1]
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), second.Date)
	assert.InDelta(t, -45.5, second.Amount, 1e-9)
	assert.Equal(t, model.DefaultDescription, second.Description)

	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 3, res.Dropped)
	assert.Equal(t, 1, res.DropReasons[ReasonBadDate])
	assert.Equal(t, 2, res.DropReasons[ReasonBadAmount])
}

func TestNormalizer_SchemaErrorAbortsSource(t *testing.T) {
	ext := &ingest.Extraction{
		Columns: []string{"when", "amount"},
		Records: []ingest.RawRecord{{"when": "2024-01-01", "amount": "5"}},
	}

	res, err := New(DefaultAliases).Normalize(ext)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, common.ErrSchema)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{raw: "1,234,567.89", want: 1234567.89, ok: true},
		{raw: "-20", want: -20, ok: true},
		{raw: "  3.5 ", want: 3.5, ok: true},
		{raw: "", ok: false},
		{raw: "$12", ok: false},
		{raw: "12abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
