// Package features turns classified transactions into numeric matrices for
// the anomaly and cluster models.
package features

import (
	"math"
	"sort"

	"github.com/Veraticus/finsight/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OtherCategory is the catch-all bucket for categories outside the top N.
const OtherCategory = "__other__"

// Matrix is a row-major feature matrix with named columns.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (m Matrix) Len() int { return len(m.Rows) }

// TopCategories returns the n most frequent categories. Ties keep the order
// in which categories first appear.
func TopCategories(txns []model.Transaction, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, t := range txns {
		if _, ok := counts[t.Category]; !ok {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// TrimCategory maps a category onto itself when it is in top, otherwise
// onto OtherCategory.
func TrimCategory(category string, top []string) string {
	for _, c := range top {
		if c == category {
			return category
		}
	}
	return OtherCategory
}

// OneHot encodes each value as an indicator vector. Columns are the distinct
// values in sorted order, prefixed with "cat_".
func OneHot(values []string) ([]string, [][]float64) {
	distinct := make(map[string]struct{})
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	names := make([]string, 0, len(distinct))
	for v := range distinct {
		names = append(names, v)
	}
	sort.Strings(names)

	index := make(map[string]int, len(names))
	columns := make([]string, len(names))
	for i, v := range names {
		index[v] = i
		columns[i] = "cat_" + v
	}

	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = make([]float64, len(names))
		rows[i][index[v]] = 1
	}
	return columns, rows
}

// Transactions builds the per-transaction matrix: amount, day of month,
// month number and a one-hot of the top categories. When absolute is false
// the signed actual amount is used.
func Transactions(txns []model.Transaction, topN int, absolute bool) Matrix {
	top := TopCategories(txns, topN)
	trimmed := make([]string, len(txns))
	for i, t := range txns {
		trimmed[i] = TrimCategory(t.Category, top)
	}
	catColumns, catRows := OneHot(trimmed)

	m := Matrix{
		Columns: append([]string{"amt_feat", "day", "month_num"}, catColumns...),
		Rows:    make([][]float64, len(txns)),
	}
	for i, t := range txns {
		amount := t.ActualAmount()
		if absolute {
			amount = math.Abs(amount)
		}
		row := make([]float64, 0, len(m.Columns))
		row = append(row, amount, float64(t.Date.Day()), float64(t.Date.Month()))
		row = append(row, catRows[i]...)
		m.Rows[i] = row
	}
	return m
}

// Standardize scales every column to zero mean and unit population
// variance. Constant columns are centered and left unscaled.
func Standardize(m Matrix) Matrix {
	out := Matrix{Columns: m.Columns, Rows: make([][]float64, len(m.Rows))}
	for i, row := range m.Rows {
		out.Rows[i] = make([]float64, len(row))
		copy(out.Rows[i], row)
	}
	if len(m.Rows) == 0 {
		return out
	}

	n := float64(len(m.Rows))
	col := make([]float64, len(m.Rows))
	for j := range m.Columns {
		for i, row := range m.Rows {
			col[i] = row[j]
		}
		mean := floats.Sum(col) / n
		scale := 1.0
		if len(col) > 1 {
			_, variance := stat.MeanVariance(col, nil)
			// MeanVariance is the unbiased estimate; rescale to population.
			variance *= (n - 1) / n
			if sd := math.Sqrt(variance); sd > 1e-12 {
				scale = sd
			}
		}
		for i := range out.Rows {
			out.Rows[i][j] = (out.Rows[i][j] - mean) / scale
		}
	}
	return out
}
