package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/export"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable draws a result table with a title. A positive limit caps
// the number of body rows shown; the remainder is summarized below.
func RenderTable(t export.Table, limit int) string {
	cells := t.Strings()
	body := cells[1:]
	rows := t.Rows
	hidden := 0
	if limit > 0 && len(body) > limit {
		hidden = len(body) - limit
		body = body[:limit]
		rows = rows[:limit]
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(ChartIcon + " " + t.Name))
	b.WriteString("\n")
	if len(body) == 0 {
		b.WriteString(SubtleStyle.Render("(no rows)"))
		return b.String()
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers(cells[0]...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			return cellStyleFor(rows[row], col)
		})
	b.WriteString(tbl.String())

	if hidden > 0 {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("… %d more rows", hidden)))
	}
	return b.String()
}

func cellStyleFor(row []any, col int) lipgloss.Style {
	if col >= len(row) {
		return cellStyle
	}
	switch v := row[col].(type) {
	case float64:
		if v < 0 {
			return negativeCellStyle
		}
		return numberCellStyle
	case int:
		return numberCellStyle
	default:
		return cellStyle
	}
}
