package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	reasonBlankRow   = "blank row"
	reasonMalformed  = "malformed row"
	utf8BOM          = "\xef\xbb\xbf"
	emptyHeaderLabel = "unnamed"
)

// CSVExtractor reads delimited text with a header row.
type CSVExtractor struct{}

// Extract implements Extractor.
func (e *CSVExtractor) Extract(ctx context.Context, src Source) (*Extraction, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(src.Data, []byte(utf8BOM))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV source")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	ext := newExtraction(src)
	ext.Columns = uniqueHeaders(header)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ext.Seen++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			ext.drop(reasonMalformed)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", ext.Seen+1, err)
		}

		ext.addRow(row)
	}

	return ext, nil
}

// SpreadsheetExtractor reads the first worksheet of an xlsx workbook.
type SpreadsheetExtractor struct{}

// Extract implements Extractor.
func (e *SpreadsheetExtractor) Extract(ctx context.Context, src Source) (*Extraction, error) {
	book, err := excelize.OpenReader(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	ext := newExtraction(src)
	ext.Columns = uniqueHeaders(rows[0])

	dates := newDateCells(book, sheets[0])
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext.Seen++
		for col, cell := range row {
			if date, ok := dates.format(col+1, i+2, cell); ok {
				row[col] = date
			}
		}
		ext.addRow(row)
	}

	return ext, nil
}

// dateCells turns date-styled serial numbers back into ISO dates. Cells are
// read raw, so date cells arrive as serials regardless of display format.
type dateCells struct {
	book     *excelize.File
	sheet    string
	styles   map[int]bool
	date1904 bool
}

func newDateCells(book *excelize.File, sheet string) *dateCells {
	d := &dateCells{book: book, sheet: sheet, styles: make(map[int]bool)}
	if props, err := book.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) format(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	styleID, err := d.book.GetCellStyle(d.sheet, name)
	if err != nil || !d.isDateStyle(styleID) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := d.styles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := d.book.GetStyle(styleID); err == nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	d.styles[styleID] = isDate
	return isDate
}

// isDateNumFmt recognizes the built-in date formats (14-22, 45-47) and
// custom formats containing a year or day token.
func isDateNumFmt(numFmt int, custom *string) bool {
	if custom != nil {
		code := strings.ToLower(stripFormatLiterals(*custom))
		return strings.ContainsAny(code, "yd")
	}
	return (numFmt >= 14 && numFmt <= 22) || (numFmt >= 45 && numFmt <= 47)
}

// stripFormatLiterals drops quoted text and bracketed sections such as
// colors and locales from a number format code.
func stripFormatLiterals(code string) string {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// addRow zips a row with the header. Short rows are padded with empty
// values; cells beyond the header are ignored.
func (e *Extraction) addRow(row []string) {
	blank := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		e.drop(reasonBlankRow)
		return
	}

	record := make(RawRecord, len(e.Columns))
	for i, col := range e.Columns {
		if i < len(row) {
			record[col] = row[i]
		} else {
			record[col] = ""
		}
	}
	e.Records = append(e.Records, record)
}

// uniqueHeaders keeps header text as-is but disambiguates repeats
// ("amount", "amount.1") and names empty headers.
func uniqueHeaders(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("%s: %d", emptyHeaderLabel, i)
		}
		name := h
		if n := seen[h]; n > 0 {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h]++
		out[i] = name
	}
	return out
}
