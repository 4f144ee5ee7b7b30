// Package pipeline runs sources through ingestion, normalization and
// classification, and fans the classified ledger out to the analytics.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/finsight/internal/classification"
	"github.com/Veraticus/finsight/internal/ingest"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/normalize"
	"github.com/google/uuid"
)

// SourceReport records what happened to one source. Every dropped row is
// counted under its reason.
type SourceReport struct {
	DropReasons  map[string]int
	Source       string
	Kind         ingest.Kind
	Seen         int
	Extracted    int
	Normalized   int
	Dropped      int
	Duplicates   int
	Transactions int
}

// Result is the classified ledger of one run and its diagnostics.
type Result struct {
	Ledger     *model.Ledger
	RunID      string
	Sources    []SourceReport
	Duplicates int
}

// Dropped returns the rows dropped across all sources.
func (r *Result) Dropped() int {
	total := 0
	for _, s := range r.Sources {
		total += s.Dropped
	}
	return total
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAdapter replaces the ingestion adapter.
func WithAdapter(a *ingest.Adapter) Option {
	return func(p *Pipeline) { p.adapter = a }
}

// WithAliases replaces the column alias table.
func WithAliases(aliases normalize.AliasTable) Option {
	return func(p *Pipeline) { p.normalizer = normalize.New(aliases) }
}

// WithProgress registers a callback invoked after each source is loaded.
func WithProgress(fn func(source string)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// Pipeline turns sources into a classified ledger.
type Pipeline struct {
	adapter    *ingest.Adapter
	normalizer *normalize.Normalizer
	classifier classification.Classifier
	progress   func(source string)
}

// New returns a pipeline using the given classifier.
func New(classifier classification.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		adapter:    ingest.NewAdapter(),
		normalizer: normalize.New(normalize.DefaultAliases),
		classifier: classifier,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loads every source into one ledger. Transactions that repeat across
// sources (same date, amount, description and category) are kept once and
// counted as duplicates. Repeats within a single source are kept. An
// ingestion or schema failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, sources ...ingest.Source) (*Result, error) {
	res := &Result{RunID: uuid.New().String()}
	logger := slog.With("run_id", res.RunID)

	seen := make(map[string]string)
	var txns []model.Transaction

	for _, src := range sources {
		report, loaded, err := p.load(ctx, src)
		if err != nil {
			logger.Error("source failed", "source", src.Name, "error", err)
			return nil, err
		}

		for _, t := range loaded {
			h := t.Hash()
			if owner, dup := seen[h]; dup && owner != src.Name {
				report.Duplicates++
				continue
			}
			seen[h] = src.Name
			txns = append(txns, t)
			report.Transactions++
		}
		res.Duplicates += report.Duplicates
		res.Sources = append(res.Sources, *report)

		logger.Info("loaded source",
			"source", report.Source,
			"kind", report.Kind,
			"transactions", report.Transactions,
			"dropped", report.Dropped,
			"duplicates", report.Duplicates)

		if p.progress != nil {
			p.progress(src.Name)
		}
	}

	res.Ledger = classification.Classify(txns, p.classifier)
	logger.Info("pipeline complete",
		"sources", len(sources),
		"transactions", res.Ledger.Len(),
		"dropped", res.Dropped(),
		"duplicates", res.Duplicates)

	return res, nil
}

func (p *Pipeline) load(ctx context.Context, src ingest.Source) (*SourceReport, []model.Transaction, error) {
	ext, err := p.adapter.Extract(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	norm, err := p.normalizer.Normalize(ext)
	if err != nil {
		return nil, nil, fmt.Errorf("normalizing %s: %w", src.Name, err)
	}

	report := &SourceReport{
		Source:      src.Name,
		Kind:        src.Kind,
		Seen:        ext.Seen,
		Extracted:   len(ext.Records),
		Normalized:  len(norm.Transactions),
		Dropped:     ext.Dropped + norm.Dropped,
		DropReasons: make(map[string]int),
	}
	for reason, n := range ext.DropReasons {
		report.DropReasons[reason] += n
	}
	for reason, n := range norm.DropReasons {
		report.DropReasons[reason] += n
	}
	return report, norm.Transactions, nil
}
