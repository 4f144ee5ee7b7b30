// Package ingest extracts raw, untyped records from statement sources.
//
// Nothing here interprets the records beyond splitting them into fields;
// mapping onto the canonical transaction schema is the normalizer's job.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
)

// Kind identifies how a source is read.
type Kind string

// Supported source kinds.
const (
	KindCSV          Kind = "csv"
	KindSpreadsheet  Kind = "spreadsheet"
	KindDocumentText Kind = "document-text"
	KindOFX          Kind = "ofx"
)

// RawRecord is one extracted row keyed by its source column name.
type RawRecord map[string]string

// Source is a statement loaded into memory.
type Source struct {
	Name string
	Kind Kind
	Data []byte
}

// Extraction is the result of reading one source.
type Extraction struct {
	DropReasons map[string]int
	Source      string
	Kind        Kind
	Columns     []string
	Records     []RawRecord
	Seen        int // Rows or lines examined
	Dropped     int
}

func newExtraction(src Source) *Extraction {
	return &Extraction{
		Source:      src.Name,
		Kind:        src.Kind,
		DropReasons: make(map[string]int),
	}
}

// drop counts a skipped row under reason.
func (e *Extraction) drop(reason string) {
	e.Dropped++
	e.DropReasons[reason]++
}

// Extractor reads one kind of source.
type Extractor interface {
	Extract(ctx context.Context, src Source) (*Extraction, error)
}

// Adapter dispatches sources to the extractor registered for their kind.
type Adapter struct {
	extractors map[Kind]Extractor
}

// NewAdapter returns an adapter with every built-in extractor registered.
func NewAdapter() *Adapter {
	return &Adapter{
		extractors: map[Kind]Extractor{
			KindCSV:          &CSVExtractor{},
			KindSpreadsheet:  &SpreadsheetExtractor{},
			KindDocumentText: &TextExtractor{},
			KindOFX:          &OFXExtractor{},
		},
	}
}

// Register installs or replaces the extractor for a kind.
func (a *Adapter) Register(kind Kind, extractor Extractor) {
	a.extractors[kind] = extractor
}

// Extract reads the source with the extractor for its kind. Unknown kinds
// and unreadable sources fail with an IngestionError; individual bad rows
// are only counted.
func (a *Adapter) Extract(ctx context.Context, src Source) (*Extraction, error) {
	extractor, ok := a.extractors[src.Kind]
	if !ok {
		return nil, &common.IngestionError{Source: src.Name, Kind: string(src.Kind), Err: common.ErrUnsupportedSource}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext, err := extractor.Extract(ctx, src)
	if err != nil {
		return nil, &common.IngestionError{Source: src.Name, Kind: string(src.Kind), Err: err}
	}

	slog.Debug("extracted source",
		"source", src.Name,
		"kind", src.Kind,
		"records", len(ext.Records),
		"dropped", ext.Dropped)

	return ext, nil
}

// DetectKind maps a file extension onto a source kind.
func DetectKind(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx", ".xlsm":
		return KindSpreadsheet, nil
	case ".pdf", ".txt":
		return KindDocumentText, nil
	case ".ofx", ".qfx":
		return KindOFX, nil
	default:
		return "", &common.IngestionError{Source: path, Err: common.ErrUnsupportedSource}
	}
}

// ParseKind validates a kind given by name.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindCSV, KindSpreadsheet, KindDocumentText, KindOFX:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedSource, name)
	}
}

// OpenFile loads a file as a source. An empty kind is detected from the
// file extension.
func OpenFile(path string, kind Kind) (Source, error) {
	if kind == "" {
		detected, err := DetectKind(path)
		if err != nil {
			return Source{}, err
		}
		kind = detected
	}

	data, err := os.ReadFile(path) //nolint:gosec // Reading user-specified statement files is intended
	if err != nil {
		return Source{}, &common.IngestionError{Source: path, Kind: string(kind), Err: err}
	}

	return Source{Name: filepath.Base(path), Kind: kind, Data: data}, nil
}
