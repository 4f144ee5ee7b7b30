package sheets

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type update struct {
	rng    string
	values [][]any
}

type fakeAPI struct {
	openErr     error
	createdTabs []string
	existing    []string
	added       []string
	cleared     []string
	formatted   []string
	updates     []update
	failUpdates int
	mu          sync.Mutex
}

func (f *fakeAPI) Open(_ context.Context, _ string) ([]string, error) {
	return f.existing, f.openErr
}

func (f *fakeAPI) Create(_ context.Context, _, _ string, tabs []string) (string, string, error) {
	f.createdTabs = tabs
	return "new-id", "https://example.test/new-id", nil
}

func (f *fakeAPI) AddTabs(_ context.Context, _ string, tabs []string) error {
	f.added = append(f.added, tabs...)
	return nil
}

func (f *fakeAPI) Clear(_ context.Context, _, tab string) error {
	f.cleared = append(f.cleared, tab)
	return nil
}

func (f *fakeAPI) Update(_ context.Context, _, rng string, values [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates > 0 {
		f.failUpdates--
		return errors.New("transient")
	}
	f.updates = append(f.updates, update{rng: rng, values: values})
	return nil
}

func (f *fakeAPI) FormatHeaders(_ context.Context, _ string, tabs []string) error {
	f.formatted = tabs
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ServiceAccountPath = "/dev/null"
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func tables() []export.Table {
	return []export.Table{
		{Name: "monthly_summary", Header: []string{"month", "net"}, Rows: [][]any{{"2024-01", 10.0}, {"2024-02", -5.0}}},
		{Name: strings.Repeat("y", 40), Header: []string{"a"}},
	}
}

func TestPublish_CreatesSpreadsheet(t *testing.T) {
	api := &fakeAPI{}
	p := newPublisher(api, testConfig(), nil)

	id, err := p.Publish(context.Background(), tables())
	require.NoError(t, err)

	assert.Equal(t, "new-id", id)
	assert.Equal(t, []string{"monthly_summary", strings.Repeat("y", 31)}, api.createdTabs)
	require.Len(t, api.updates, 2)
	assert.Equal(t, "'monthly_summary'!A1", api.updates[0].rng)
	assert.Equal(t, [][]any{{"month", "net"}, {"2024-01", 10.0}, {"2024-02", -5.0}}, api.updates[0].values)
	assert.Equal(t, api.createdTabs, api.formatted)
}

func TestPublish_ExistingSpreadsheet(t *testing.T) {
	api := &fakeAPI{existing: []string{"Sheet1", "Monthly_Summary"}}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing"
	cfg.EnableFormatting = false

	id, err := newPublisher(api, cfg, nil).Publish(context.Background(), tables())
	require.NoError(t, err)

	assert.Equal(t, "existing", id)
	assert.Equal(t, []string{"monthly_summary"}, api.cleared)
	assert.Equal(t, []string{strings.Repeat("y", 31)}, api.added)
	assert.Nil(t, api.formatted)
}

func TestPublish_Batches(t *testing.T) {
	api := &fakeAPI{}
	cfg := testConfig()
	cfg.BatchSize = 2

	_, err := newPublisher(api, cfg, nil).Publish(context.Background(), tables()[:1])
	require.NoError(t, err)

	require.Len(t, api.updates, 2)
	assert.Equal(t, "'monthly_summary'!A1", api.updates[0].rng)
	assert.Equal(t, "'monthly_summary'!A3", api.updates[1].rng)
	assert.Len(t, api.updates[1].values, 1)
}

func TestPublish_RetriesTransientFailures(t *testing.T) {
	api := &fakeAPI{failUpdates: 2}

	_, err := newPublisher(api, testConfig(), nil).Publish(context.Background(), tables()[:1])
	require.NoError(t, err)
	assert.Len(t, api.updates, 1)

	api = &fakeAPI{failUpdates: 10}
	_, err = newPublisher(api, testConfig(), nil).Publish(context.Background(), tables()[:1])
	assert.ErrorIs(t, err, common.ErrMaxRetries)
}

func TestPublish_Errors(t *testing.T) {
	_, err := newPublisher(&fakeAPI{}, testConfig(), nil).Publish(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrNoTransactions)

	cfg := testConfig()
	cfg.SpreadsheetID = "missing"
	cfg.RetryAttempts = 1
	_, err = newPublisher(&fakeAPI{openErr: errors.New("404")}, cfg, nil).Publish(context.Background(), tables())
	assert.ErrorContains(t, err, "unable to access spreadsheet missing")
}

func TestQuoteTab(t *testing.T) {
	assert.Equal(t, "'it''s'", quoteTab("it's"))
}
