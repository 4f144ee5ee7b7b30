package aggregate

import (
	"math"
	"sort"

	"github.com/Veraticus/finsight/internal/model"
)

// CategoryTotal is one category's signed net and gross (sum of absolute
// amounts).
type CategoryTotal struct {
	Category string
	Net      float64
	Gross    float64
}

// Categories ranks categories by absolute net, largest first. Ties are
// broken by name.
func Categories(ledger *model.Ledger) []CategoryTotal {
	out := categoryTotals(ledger.Transactions())
	sort.SliceStable(out, func(i, j int) bool {
		a, b := math.Abs(out[i].Net), math.Abs(out[j].Net)
		if a != b {
			return a > b
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Drilldown ranks the categories of one month by gross amount.
func Drilldown(ledger *model.Ledger, month model.Month) []CategoryTotal {
	var txns []model.Transaction
	for _, t := range ledger.Transactions() {
		if t.Month() == month {
			txns = append(txns, t)
		}
	}

	out := categoryTotals(txns)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gross != out[j].Gross {
			return out[i].Gross > out[j].Gross
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func categoryTotals(txns []model.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, t := range txns {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category})
		}
		out[i].Net += t.ActualAmount()
		out[i].Gross += math.Abs(t.ActualAmount())
	}
	return out
}

// Pivot is the month by category matrix of net amounts.
type Pivot struct {
	values     map[model.Month]map[string]float64
	Months     []model.Month
	Categories []string
}

// NewPivot builds the pivot over the observed months and categories.
func NewPivot(ledger *model.Ledger) *Pivot {
	p := &Pivot{values: make(map[model.Month]map[string]float64)}
	seen := make(map[string]bool)
	for _, t := range ledger.Transactions() {
		row, ok := p.values[t.Month()]
		if !ok {
			row = make(map[string]float64)
			p.values[t.Month()] = row
		}
		row[t.Category] += t.ActualAmount()
		if !seen[t.Category] {
			seen[t.Category] = true
			p.Categories = append(p.Categories, t.Category)
		}
	}
	p.Months = ledger.Months()
	sort.Strings(p.Categories)
	return p
}

// Get returns the net for a month and category, zero when absent.
func (p *Pivot) Get(month model.Month, category string) float64 {
	return p.values[month][category]
}

// Has reports whether the category had transactions in the month.
func (p *Pivot) Has(month model.Month, category string) bool {
	_, ok := p.values[month][category]
	return ok
}

// PeakMonth returns the month in which the category's absolute net was
// largest. The earliest month wins ties; ok is false for unknown categories.
func (p *Pivot) PeakMonth(category string) (model.Month, bool) {
	var (
		best  model.Month
		value = -1.0
	)
	for _, m := range p.Months {
		if !p.Has(m, category) {
			continue
		}
		if v := math.Abs(p.Get(m, category)); v > value {
			best, value = m, v
		}
	}
	return best, value >= 0
}
