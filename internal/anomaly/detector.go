// Package anomaly flags unusual transactions with an isolation forest.
package anomaly

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/features"
	"github.com/Veraticus/finsight/internal/model"
)

const (
	// MinTransactions is the smallest ledger the detector will fit.
	MinTransactions = 5
	// TopCategories caps the one-hot category encoding.
	TopCategories = 8
	// DefaultSeed fixes the forest so repeated runs agree exactly.
	DefaultSeed uint64 = 42
)

// Options configures a detection run.
type Options struct {
	Contamination     float64
	UseAbsoluteAmount bool
	Seed              uint64
	Trees             int
}

// DefaultOptions mirrors model.DefaultFilter.
func DefaultOptions() Options {
	return Options{
		Contamination:     0.05,
		UseAbsoluteAmount: true,
		Seed:              DefaultSeed,
		Trees:             defaultTrees,
	}
}

// OptionsFromFilter takes contamination and amount mode from the filter.
func OptionsFromFilter(f model.Filter) Options {
	opts := DefaultOptions()
	opts.Contamination = f.Contamination
	opts.UseAbsoluteAmount = f.UseAbsoluteAmount
	return opts
}

// Entry is the verdict for one transaction.
type Entry struct {
	Transaction model.Transaction
	Score       float64
	Outlier     bool
}

// Report holds every scored transaction ordered by score ascending, so the
// most anomalous come first. Insufficient is set instead when the ledger
// was too small to fit.
type Report struct {
	Insufficient  *common.InsufficientDataError
	Features      []string
	Entries       []Entry
	Contamination float64
}

// Anomalies returns the outlier entries, most anomalous first.
func (r *Report) Anomalies() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Outlier {
			out = append(out, e)
		}
	}
	return out
}

// Detect scores every transaction in the ledger. A ledger with fewer than
// MinTransactions entries yields a report with Insufficient set and a nil
// error.
func Detect(ledger *model.Ledger, opts Options) (*Report, error) {
	if opts.Contamination <= 0 || opts.Contamination >= 1 {
		return nil, fmt.Errorf("%w: contamination %v must be in (0, 1)", common.ErrInvalidConfig, opts.Contamination)
	}
	if opts.Trees <= 0 {
		opts.Trees = defaultTrees
	}

	report := &Report{Contamination: opts.Contamination}
	if ledger.Len() < MinTransactions {
		report.Insufficient = &common.InsufficientDataError{
			Component: "anomaly",
			Have:      ledger.Len(),
			Need:      MinTransactions,
		}
		return report, nil
	}

	txns := ledger.Transactions()
	matrix := features.Standardize(features.Transactions(txns, TopCategories, opts.UseAbsoluteAmount))
	report.Features = matrix.Columns

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	f := fitForest(matrix.Rows, opts.Trees, rng)
	raw := f.scoreSamples(matrix.Rows)
	offset := percentile(raw, 100*opts.Contamination)

	report.Entries = make([]Entry, len(txns))
	outliers := 0
	for i, t := range txns {
		score := raw[i] - offset
		report.Entries[i] = Entry{Transaction: t, Score: score, Outlier: score < 0}
		if score < 0 {
			outliers++
		}
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Score < report.Entries[j].Score
	})

	slog.Debug("anomaly detection complete",
		"transactions", len(txns),
		"features", len(matrix.Columns),
		"outliers", outliers,
		"offset", offset)

	return report, nil
}
