package normalize

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/ingest"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/shopspring/decimal"
)

// Row drop reasons.
const (
	ReasonBadDate   = "invalid date"
	ReasonBadAmount = "non-numeric amount"
)

// Result holds the canonical transactions of one source and what was lost
// getting there.
type Result struct {
	DropReasons  map[string]int
	Mapping      Mapping
	Transactions []model.Transaction
	Rows         int
	Dropped      int
}

// Normalizer coerces raw records into transactions.
type Normalizer struct {
	aliases AliasTable
}

// New returns a normalizer using the given alias table.
func New(aliases AliasTable) *Normalizer {
	return &Normalizer{aliases: aliases}
}

// Normalize maps every record of an extraction. A missing date or amount
// column fails the whole source with a SchemaError; rows whose values
// cannot be coerced are dropped and counted.
func (n *Normalizer) Normalize(ext *ingest.Extraction) (*Result, error) {
	mapping, err := n.aliases.Resolve(ext.Columns)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Mapping:      mapping,
		DropReasons:  make(map[string]int),
		Transactions: make([]model.Transaction, 0, len(ext.Records)),
	}

	for i, rec := range ext.Records {
		res.Rows++

		date, ok := common.ParseDate(rec[mapping[FieldDate]])
		if !ok {
			res.drop(ReasonBadDate)
			slog.Debug("dropping row", "source", ext.Source, "row", i+1, "reason", ReasonBadDate)
			continue
		}

		amount, ok := ParseAmount(rec[mapping[FieldAmount]])
		if !ok {
			res.drop(ReasonBadAmount)
			slog.Debug("dropping row", "source", ext.Source, "row", i+1, "reason", ReasonBadAmount)
			continue
		}

		res.Transactions = append(res.Transactions, model.Transaction{
			Date:        date,
			Amount:      amount,
			Description: valueOr(rec, mapping, FieldDescription, model.DefaultDescription),
			Category:    valueOr(rec, mapping, FieldCategory, model.DefaultCategory),
			Source:      ext.Source,
		})
	}

	return res, nil
}

func (r *Result) drop(reason string) {
	r.Dropped++
	r.DropReasons[reason]++
}

// ParseAmount strips grouping separators and parses a decimal amount.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func valueOr(rec ingest.RawRecord, mapping Mapping, field Field, fallback string) string {
	col, ok := mapping[field]
	if !ok {
		return fallback
	}
	if v := strings.TrimSpace(rec[col]); v != "" {
		return v
	}
	return fallback
}
