package service

import (
	"context"
	"strings"
	"testing"

	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReportCache is an in-process stand-in for the redis cache.
type memReportCache struct {
	rows []domain.ConsolidatedRow
	has  bool
	sets int
}

func (c *memReportCache) GetRows(ctx context.Context) ([]domain.ConsolidatedRow, bool, error) {
	return c.rows, c.has, nil
}

func (c *memReportCache) SetRows(ctx context.Context, rows []domain.ConsolidatedRow) error {
	c.rows = rows
	c.has = true
	c.sets++
	return nil
}

func (c *memReportCache) Invalidate(ctx context.Context) error {
	c.rows = nil
	c.has = false
	return nil
}

func newDemoReportService(reportCache cache.ReportCache) *ReportService {
	return NewReportService(demo.NewProvider().Gateway(), demo.NewProvider().Gateway(), reportCache, reportCfg)
}

func TestConsolidatedRowsFromDemoData(t *testing.T) {
	svc := newDemoReportService(cache.NewNoopReportCache())

	rows, degraded, err := svc.ConsolidatedRows(context.Background())

	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, rows, 3)

	byID := make(map[string]domain.ConsolidatedRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	sp := byID["101"]
	assert.Equal(t, "São Paulo - Centro", sp.BranchName)
	assert.Equal(t, 3750.0, sp.PlannedTotalPeriod)
	assert.Equal(t, 11250.0, sp.PlannedTotalAccumulated)
	assert.Equal(t, 387.5, sp.Variance)
	assert.InDelta(t, 3.44, sp.PercentVariance, 0.01)
	assert.Equal(t, domain.StatusSubmitted, sp.Status)

	mg := byID["103"]
	assert.Equal(t, domain.ReportStatusPending, mg.Status, "the draft order reads as pending")
}

func TestConsolidatedRowsDegradesToDemoData(t *testing.T) {
	mem := &memReportCache{}
	svc := NewReportService(newUnavailableGateway(), demo.NewProvider().Gateway(), mem, reportCfg)

	rows, degraded, err := svc.ConsolidatedRows(context.Background())

	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Len(t, rows, 3)
	assert.Zero(t, mem.sets, "degraded results are never cached")
}

func TestConsolidatedRowsCaching(t *testing.T) {
	mem := &memReportCache{}
	svc := newDemoReportService(mem)
	ctx := context.Background()

	first, _, err := svc.ConsolidatedRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.sets)

	second, degraded, err := svc.ConsolidatedRows(ctx)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 1, mem.sets, "second call is served from cache")
	assert.Equal(t, first, second)
}

func TestFilteredAndSummary(t *testing.T) {
	svc := newDemoReportService(cache.NewNoopReportCache())
	ctx := context.Background()

	filter := domain.ReportFilter{Status: domain.StatusSubmitted}

	rows, _, err := svc.Filtered(ctx, filter)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	summary, _, err := svc.Summary(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 6792.5, summary.TotalActual)
	assert.Equal(t, 0, summary.PendingCount)
}

func TestChartsFromDemoData(t *testing.T) {
	svc := newDemoReportService(cache.NewNoopReportCache())

	charts, _, err := svc.Charts(context.Background(), domain.ReportFilter{})

	require.NoError(t, err)
	require.Len(t, charts.Variance, 3)
	require.Len(t, charts.PlannedActual, 3)
	assert.Equal(t, "São Paulo", charts.PlannedActual[0].Branch)
}

func TestExportCSVFilename(t *testing.T) {
	svc := newDemoReportService(cache.NewNoopReportCache())

	name, payload, err := svc.ExportCSV(context.Background(), domain.ReportFilter{})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "relatorio-consolidado-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	lines := strings.Split(string(payload), "\n")
	assert.Len(t, lines, 4, "header plus one line per demo order")
}
