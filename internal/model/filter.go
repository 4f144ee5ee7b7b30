package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
)

// Bounds accepted for analysis parameters.
const (
	MinContamination = 0.001
	MaxContamination = 0.2
	MinClusters      = 2
	MaxClusters      = 6
)

// YearFilter selects either every year or one specific year.
type YearFilter struct {
	year int
}

// YearAll selects every year.
var YearAll = YearFilter{}

// ForYear selects a single year.
func ForYear(year int) YearFilter {
	return YearFilter{year: year}
}

// ParseYearFilter accepts "All" (any case, or empty) or a four-digit year.
func ParseYearFilter(s string) (YearFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return YearAll, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return YearAll, fmt.Errorf("%w: year must be \"All\" or a year, got %q", common.ErrInvalidConfig, s)
	}
	return ForYear(year), nil
}

// All reports whether the filter selects every year.
func (y YearFilter) All() bool {
	return y.year == 0
}

// Year returns the selected year, or zero for YearAll.
func (y YearFilter) Year() int {
	return y.year
}

func (y YearFilter) String() string {
	if y.All() {
		return "All"
	}
	return strconv.Itoa(y.year)
}

// ClusterMode selects the granularity of clustering.
type ClusterMode string

const (
	// ClusterTransactions clusters individual transactions.
	ClusterTransactions ClusterMode = "transactions"
	// ClusterMonths clusters monthly totals.
	ClusterMonths ClusterMode = "months"
)

// Filter is the immutable set of parameters supplied with every analysis.
// Selected months are set through WithSelectedMonths and read back as a copy.
type Filter struct {
	Year              YearFilter
	ClusterMode       ClusterMode
	selectedMonths    []Month
	Contamination     float64
	ClusterCount      int
	UseAbsoluteAmount bool
}

// DefaultFilter returns the filter used when nothing is configured.
func DefaultFilter() Filter {
	return Filter{
		Year:              YearAll,
		Contamination:     0.05,
		ClusterCount:      3,
		UseAbsoluteAmount: true,
		ClusterMode:       ClusterTransactions,
	}
}

// Validate checks parameter ranges.
func (f Filter) Validate() error {
	if f.Contamination < MinContamination || f.Contamination > MaxContamination {
		return fmt.Errorf("%w: contamination %.3f outside [%.3f, %.1f]",
			common.ErrInvalidConfig, f.Contamination, MinContamination, MaxContamination)
	}
	if f.ClusterCount < MinClusters || f.ClusterCount > MaxClusters {
		return fmt.Errorf("%w: cluster count %d outside [%d, %d]",
			common.ErrInvalidConfig, f.ClusterCount, MinClusters, MaxClusters)
	}
	switch f.ClusterMode {
	case ClusterTransactions, ClusterMonths:
	default:
		return fmt.Errorf("%w: unknown cluster mode %q", common.ErrInvalidConfig, f.ClusterMode)
	}
	return nil
}

// WithSelectedMonths returns a copy of f with the months set, sorted
// chronologically and de-duplicated.
func (f Filter) WithSelectedMonths(months []Month) Filter {
	seen := make(map[Month]bool, len(months))
	sorted := make([]Month, 0, len(months))
	for _, m := range months {
		if !seen[m] {
			seen[m] = true
			sorted = append(sorted, m)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	f.selectedMonths = sorted
	return f
}

// SelectedMonths returns a copy of the selected months, or nil when none
// are selected.
func (f Filter) SelectedMonths() []Month {
	if len(f.selectedMonths) == 0 {
		return nil
	}
	out := make([]Month, len(f.selectedMonths))
	copy(out, f.selectedMonths)
	return out
}
