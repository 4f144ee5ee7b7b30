// Package export writes result tables as CSV, workbooks and SQLite
// databases.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/finsight/internal/model"
)

// MaxSheetName is the longest sheet name spreadsheet formats accept.
const MaxSheetName = 31

// Table is a named result table. Cells hold strings, numbers, booleans,
// dates, months or percents.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Strings renders every cell as text, header first.
func (t Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatCell(v)
		}
		out = append(out, cells)
	}
	return out
}

// Values returns the header and rows with numbers and booleans kept
// native and everything else rendered as text.
func (t Table) Values() [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	out = append(out, header)
	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = nativeCell(v)
		}
		out = append(out, cells)
	}
	return out
}

// FormatCell renders one cell. Floats keep two decimals.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', 2, 64)
	case int:
		return strconv.Itoa(c)
	case bool:
		return strconv.FormatBool(c)
	case time.Time:
		return c.Format("2006-01-02")
	case model.Month:
		if c.IsZero() {
			return model.NotApplicable
		}
		return c.String()
	case model.Percent:
		return c.String()
	case interface{ String() string }:
		return c.String()
	default:
		return ""
	}
}

// nativeCell converts a cell into a value spreadsheet and SQL writers
// store directly: numbers and booleans pass through, the rest become text.
func nativeCell(v any) any {
	switch c := v.(type) {
	case float64, int, bool:
		return c
	default:
		return FormatCell(v)
	}
}

// SheetNames truncates table names to MaxSheetName characters and makes
// them unique by replacing the tail with a counter. Characters that
// workbooks reject are replaced with underscores.
func SheetNames(tables []Table) []string {
	used := make(map[string]bool, len(tables))
	names := make([]string, len(tables))
	for i, t := range tables {
		base := truncate(sanitizeSheetName(t.Name), MaxSheetName)
		if base == "" {
			base = "Sheet"
		}
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := "_" + strconv.Itoa(n)
			name = truncate(base, MaxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func sanitizeSheetName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
