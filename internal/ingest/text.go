package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/ledongthuc/pdf"
)

// Canonical keys emitted for line-oriented sources.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
)

const (
	reasonTooShort = "too few tokens"
	reasonNoAmount = "no amount"
	reasonNoDate   = "no date"
	reasonBadDate  = "unparsable date"
)

var (
	// Grouped thousands with two decimals, or plain digits with two decimals.
	amountPattern = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d{2})|\d+(?:\.\d{2}))`)

	// Tried in order; the first form found wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(20\d{2}-\d{2}-\d{2})`),
		regexp.MustCompile(`(\d{2}/\d{2}/20\d{2})`),
		regexp.MustCompile(`(\d{2}-\d{2}-20\d{2})`),
	}

	// Glyph some PDF producers emit as a bullet in front of amounts.
	lineNoise = strings.NewReplacer("■", "")
)

// TextExtractor reads statement text line by line. Plain text sources are
// split on newlines; PDF sources have their text extracted page by page
// first.
type TextExtractor struct{}

// Extract implements Extractor.
func (e *TextExtractor) Extract(ctx context.Context, src Source) (*Extraction, error) {
	var lines []string
	var err error
	if isPDF(src.Data) {
		lines, err = pdfLines(src.Data)
	} else {
		lines, err = textLines(src.Data)
	}
	if err != nil {
		return nil, err
	}

	ext := newExtraction(src)
	ext.Columns = []string{FieldDate, FieldDescription, FieldAmount, FieldCategory}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ext.Seen++

		record, reason := ParseLine(line)
		if record == nil {
			ext.drop(reason)
			continue
		}
		ext.Records = append(ext.Records, record)
	}

	return ext, nil
}

// ParseLine extracts a record from one statement line. A line yields a
// record only when both an amount and a date are found; otherwise the
// returned reason says what was missing. Category is the last token and
// description the tokens between the first and the last.
func ParseLine(line string) (RawRecord, string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, reasonTooShort
	}

	m := amountPattern.FindStringSubmatch(lineNoise.Replace(line))
	if m == nil {
		return nil, reasonNoAmount
	}
	amount := strings.ReplaceAll(m[1], ",", "")

	var rawDate string
	for _, p := range datePatterns {
		if dm := p.FindStringSubmatch(line); dm != nil {
			rawDate = dm[1]
			break
		}
	}
	if rawDate == "" {
		return nil, reasonNoDate
	}

	date, ok := common.ParseDate(rawDate)
	if !ok {
		return nil, reasonBadDate
	}

	description := ""
	if len(parts) > 2 {
		description = strings.Join(parts[1:len(parts)-1], " ")
	}

	return RawRecord{
		FieldDate:        date.Format("2006-01-02"),
		FieldDescription: description,
		FieldAmount:      amount,
		FieldCategory:    parts[len(parts)-1],
	}, ""
}

func textLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return lines, nil
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// pdfLines extracts the text of every page. The PDF reader panics on some
// malformed documents, so a panic is reported as an unreadable source.
func pdfLines(data []byte) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("corrupt PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pageLines, err := textLines([]byte(text))
		if err != nil {
			return nil, err
		}
		lines = append(lines, pageLines...)
	}

	return lines, nil
}
