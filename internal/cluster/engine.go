// Package cluster partitions transactions or monthly totals with k-means.
package cluster

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/features"
	"github.com/Veraticus/finsight/internal/model"
)

const (
	// TopCategories caps the one-hot category encoding in transaction mode.
	TopCategories = 6
	// SamplesPerCluster is how many transactions each cluster lists.
	SamplesPerCluster = 5
	// DefaultSeed fixes the seeding so repeated runs agree exactly.
	DefaultSeed uint64 = 42
)

// Options configures a clustering run.
type Options struct {
	Mode     model.ClusterMode
	K        int
	Seed     uint64
	Restarts int
	MaxIter  int
}

// DefaultOptions mirrors model.DefaultFilter.
func DefaultOptions() Options {
	return Options{
		Mode:     model.ClusterTransactions,
		K:        3,
		Seed:     DefaultSeed,
		Restarts: defaultRestarts,
		MaxIter:  defaultMaxIter,
	}
}

// OptionsFromFilter takes mode and cluster count from the filter.
func OptionsFromFilter(f model.Filter) Options {
	opts := DefaultOptions()
	opts.Mode = f.ClusterMode
	opts.K = f.ClusterCount
	return opts
}

// Assignment places one transaction in a cluster.
type Assignment struct {
	Transaction model.Transaction
	Features    []float64
	Cluster     int
}

// MonthAssignment places one month's net total in a cluster.
type MonthAssignment struct {
	Features []float64
	Month    model.Month
	Net      float64
	Cluster  int
}

// Summary describes one transaction cluster by absolute amount.
type Summary struct {
	Cluster int
	Count   int
	Mean    float64
	Sum     float64
}

// Sample lists a cluster's largest transactions by absolute amount.
type Sample struct {
	Transactions []model.Transaction
	Cluster      int
}

// Report is the outcome of one run. Transaction mode fills Transactions,
// Summaries and Samples; month mode fills Months. Insufficient is set
// instead when there are fewer entities than clusters.
type Report struct {
	Insufficient *common.InsufficientDataError
	Mode         model.ClusterMode
	Features     []string
	Transactions []Assignment
	Months       []MonthAssignment
	Summaries    []Summary
	Samples      []Sample
	K            int
	Inertia      float64
}

// Run clusters the ledger according to opts.
func Run(ledger *model.Ledger, opts Options) (*Report, error) {
	if opts.K < model.MinClusters || opts.K > model.MaxClusters {
		return nil, fmt.Errorf("%w: cluster count %d must be in [%d, %d]",
			common.ErrInvalidConfig, opts.K, model.MinClusters, model.MaxClusters)
	}
	if opts.Restarts <= 0 {
		opts.Restarts = defaultRestarts
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = defaultMaxIter
	}

	switch opts.Mode {
	case model.ClusterTransactions, "":
		return clusterTransactions(ledger, opts), nil
	case model.ClusterMonths:
		return clusterMonths(ledger, opts), nil
	default:
		return nil, fmt.Errorf("%w: unknown cluster mode %q", common.ErrInvalidConfig, opts.Mode)
	}
}

func insufficient(report *Report, have, need int) *Report {
	report.Insufficient = &common.InsufficientDataError{Component: "cluster", Have: have, Need: need}
	return report
}

func clusterTransactions(ledger *model.Ledger, opts Options) *Report {
	report := &Report{Mode: model.ClusterTransactions, K: opts.K}
	txns := ledger.Transactions()
	if len(txns) < opts.K {
		return insufficient(report, len(txns), opts.K)
	}

	matrix := features.Standardize(features.Transactions(txns, TopCategories, true))
	report.Features = matrix.Columns

	res := kmeans(matrix.Rows, opts.K, opts.Restarts, opts.MaxIter, rand.New(rand.NewPCG(opts.Seed, opts.Seed)))
	report.Inertia = res.inertia

	report.Transactions = make([]Assignment, len(txns))
	for i, t := range txns {
		report.Transactions[i] = Assignment{Transaction: t, Features: matrix.Rows[i], Cluster: res.labels[i]}
	}
	report.Summaries = summarize(report.Transactions)
	report.Samples = samples(report.Transactions)

	slog.Debug("clustered transactions", "transactions", len(txns), "k", opts.K, "inertia", res.inertia)
	return report
}

func clusterMonths(ledger *model.Ledger, opts Options) *Report {
	report := &Report{Mode: model.ClusterMonths, K: opts.K}

	net := make(map[model.Month]float64)
	for _, t := range ledger.Transactions() {
		net[t.Month()] += t.ActualAmount()
	}
	months := ledger.Months()
	if len(months) < opts.K {
		return insufficient(report, len(months), opts.K)
	}

	raw := features.Matrix{Columns: []string{"amt_abs", "month_num"}, Rows: make([][]float64, len(months))}
	for i, m := range months {
		raw.Rows[i] = []float64{math.Abs(net[m]), float64(m.Month)}
	}
	matrix := features.Standardize(raw)
	report.Features = matrix.Columns

	res := kmeans(matrix.Rows, opts.K, opts.Restarts, opts.MaxIter, rand.New(rand.NewPCG(opts.Seed, opts.Seed)))
	report.Inertia = res.inertia

	report.Months = make([]MonthAssignment, len(months))
	for i, m := range months {
		report.Months[i] = MonthAssignment{Month: m, Net: net[m], Features: matrix.Rows[i], Cluster: res.labels[i]}
	}

	slog.Debug("clustered months", "months", len(months), "k", opts.K, "inertia", res.inertia)
	return report
}

func summarize(assignments []Assignment) []Summary {
	byCluster := make(map[int]*Summary)
	for _, a := range assignments {
		s, ok := byCluster[a.Cluster]
		if !ok {
			s = &Summary{Cluster: a.Cluster}
			byCluster[a.Cluster] = s
		}
		s.Count++
		s.Sum += math.Abs(a.Transaction.ActualAmount())
	}

	out := make([]Summary, 0, len(byCluster))
	for _, s := range byCluster {
		s.Mean = s.Sum / float64(s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Cluster < out[j].Cluster
	})
	return out
}

func samples(assignments []Assignment) []Sample {
	byCluster := make(map[int][]model.Transaction)
	for _, a := range assignments {
		byCluster[a.Cluster] = append(byCluster[a.Cluster], a.Transaction)
	}

	out := make([]Sample, 0, len(byCluster))
	for c, txns := range byCluster {
		sort.SliceStable(txns, func(i, j int) bool {
			return math.Abs(txns[i].ActualAmount()) > math.Abs(txns[j].ActualAmount())
		})
		if len(txns) > SamplesPerCluster {
			txns = txns[:SamplesPerCluster]
		}
		out = append(out, Sample{Cluster: c, Transactions: txns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cluster < out[j].Cluster })
	return out
}
