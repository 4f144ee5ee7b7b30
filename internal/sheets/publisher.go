package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/export"
)

// spreadsheetAPI is the slice of the Sheets API the publisher uses.
type spreadsheetAPI interface {
	// Open returns the titles of an existing spreadsheet's tabs.
	Open(ctx context.Context, spreadsheetID string) ([]string, error)
	// Create makes a new spreadsheet with the given tabs.
	Create(ctx context.Context, title, timeZone string, tabs []string) (id, url string, err error)
	AddTabs(ctx context.Context, spreadsheetID string, tabs []string) error
	Clear(ctx context.Context, spreadsheetID, tab string) error
	Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error
	FormatHeaders(ctx context.Context, spreadsheetID string, tabs []string) error
}

// Publisher writes result tables to a spreadsheet, one tab per table.
type Publisher struct {
	api    spreadsheetAPI
	logger *slog.Logger
	config Config
}

// NewPublisher creates a publisher backed by the Google Sheets API.
func NewPublisher(ctx context.Context, config Config, logger *slog.Logger) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	api, err := newGoogleAPI(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newPublisher(api, config, logger), nil
}

func newPublisher(api spreadsheetAPI, config Config, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{api: api, config: config, logger: logger}
}

// Publish writes every table and returns the spreadsheet ID. Tab titles
// follow the workbook rule: at most 31 characters, de-duplicated. Existing
// tabs with the same title are cleared first.
func (p *Publisher) Publish(ctx context.Context, tables []export.Table) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("%w: nothing to publish", common.ErrNoTransactions)
	}

	tabs := export.SheetNames(tables)
	p.logger.Info("publishing tables", "tables", len(tables))

	retryOpts := p.config.retryOptions()
	var spreadsheetID string
	err := common.WithRetry(ctx, func() error {
		var err error
		spreadsheetID, err = p.prepare(ctx, tabs)
		return err
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to prepare spreadsheet: %w", err)
	}

	for i, t := range tables {
		values := t.Values()
		tab := tabs[i]
		err := common.WithRetry(ctx, func() error {
			return p.writeTab(ctx, spreadsheetID, tab, values)
		}, retryOpts)
		if err != nil {
			return spreadsheetID, fmt.Errorf("failed to write tab %s: %w", tab, err)
		}
	}

	if p.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return p.api.FormatHeaders(ctx, spreadsheetID, tabs)
		}, retryOpts)
		if err != nil {
			p.logger.Warn("failed to apply formatting", "error", err, "retryable", common.IsRetryable(err))
			// Don't fail the whole operation if formatting fails
		}
	}

	p.logger.Info("publishing completed", "spreadsheet_id", spreadsheetID, "tabs", len(tabs))
	return spreadsheetID, nil
}

// prepare opens or creates the spreadsheet and makes sure every tab exists
// and is empty.
func (p *Publisher) prepare(ctx context.Context, tabs []string) (string, error) {
	if p.config.SpreadsheetID == "" {
		id, url, err := p.api.Create(ctx, p.config.SpreadsheetName, p.config.TimeZone, tabs)
		if err != nil {
			return "", fmt.Errorf("unable to create spreadsheet: %w", err)
		}
		p.logger.Info("created new spreadsheet", "id", id, "url", url)
		p.config.SpreadsheetID = id
		return id, nil
	}

	id := p.config.SpreadsheetID
	existing, err := p.api.Open(ctx, id)
	if err != nil {
		return "", fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
	}

	present := make(map[string]bool, len(existing))
	for _, title := range existing {
		present[strings.ToLower(title)] = true
	}

	var missing []string
	for _, tab := range tabs {
		if present[strings.ToLower(tab)] {
			if err := p.api.Clear(ctx, id, tab); err != nil {
				return "", fmt.Errorf("failed to clear tab %s: %w", tab, err)
			}
			continue
		}
		missing = append(missing, tab)
	}

	if len(missing) > 0 {
		if err := p.api.AddTabs(ctx, id, missing); err != nil {
			return "", fmt.Errorf("failed to add tabs: %w", err)
		}
	}
	return id, nil
}

// writeTab writes the values in batches to avoid API limits.
func (p *Publisher) writeTab(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	batchSize := p.config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultConfig().BatchSize
	}

	for i := 0; i < len(values); i += batchSize {
		end := min(i+batchSize, len(values))
		rng := fmt.Sprintf("%s!A%d", quoteTab(tab), i+1)
		if err := p.api.Update(ctx, spreadsheetID, rng, values[i:end]); err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}
		p.logger.Debug("wrote batch", "tab", tab, "start_row", i+1, "rows", end-i)
	}
	return nil
}

// quoteTab quotes a tab title for A1 notation.
func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
