package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/anomaly"
	"github.com/Veraticus/finsight/internal/cluster"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/compare"
	"github.com/Veraticus/finsight/internal/model"
)

// Component names used in ComputationErrors.
const (
	ComponentAggregate = "aggregate"
	ComponentAnomaly   = "anomaly"
	ComponentCluster   = "cluster"
	ComponentCompare   = "compare"
)

// Analysis holds every analytics result for one filter. A component that
// failed has a nil result and an entry in Errors; the others still ran.
type Analysis struct {
	Aggregates   *aggregate.Report
	Anomalies    *anomaly.Report
	Clusters     *cluster.Report
	Months       *compare.MonthComparison
	Errors       map[string]error
	YearOverYear []compare.YearChange
	Filter       model.Filter
}

// Err returns the failure of one component, if any.
func (a *Analysis) Err(component string) error {
	return a.Errors[component]
}

// Analyze runs every component over the classified ledger. The ledger is
// only read. An invalid filter is the only error returned; component
// failures are isolated as ComputationErrors on the analysis.
func Analyze(ledger *model.Ledger, filter model.Filter) (*Analysis, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	a := &Analysis{Filter: filter, Errors: make(map[string]error)}
	view := ledger.ForYear(filter.Year)

	a.run(ComponentAggregate, func() error {
		a.Aggregates = aggregate.Compute(ledger, filter)
		return nil
	})
	a.run(ComponentAnomaly, func() (err error) {
		a.Anomalies, err = anomaly.Detect(view, anomaly.OptionsFromFilter(filter))
		return err
	})
	a.run(ComponentCluster, func() (err error) {
		a.Clusters, err = cluster.Run(view, cluster.OptionsFromFilter(filter))
		return err
	})
	a.run(ComponentCompare, func() error {
		a.YearOverYear = compare.YearOverYear(ledger)
		if len(filter.SelectedMonths()) > 0 {
			a.Months = compare.Months(view, filter.SelectedMonths())
		}
		return nil
	})

	return a, nil
}

func (a *Analysis) run(component string, fn func() error) {
	if err := guard(component, fn); err != nil {
		a.Errors[component] = err
		slog.Warn("analysis component failed", "component", component, "error", err)
	}
}

// guard converts an error or panic from fn into a ComputationError.
func guard(component string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &common.ComputationError{Component: component, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := fn(); err != nil {
		return &common.ComputationError{Component: component, Err: err}
	}
	return nil
}
