package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/config"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ReportService produces the consolidated planned-vs-actual report. The
// three collections are fetched concurrently; a missing schema swaps the
// whole fetch over to the demonstration gateway so branch and product ids
// stay consistent with the orders they join against.
type ReportService struct {
	gw       repository.Gateway
	fallback repository.Gateway
	cache    cache.ReportCache
	cfg      config.ReportConfig
}

func NewReportService(gw, fallback repository.Gateway, reportCache cache.ReportCache, cfg config.ReportConfig) *ReportService {
	if reportCache == nil {
		reportCache = cache.NewNoopReportCache()
	}
	return &ReportService{gw: gw, fallback: fallback, cache: reportCache, cfg: cfg}
}

// ConsolidatedRows returns the unfiltered consolidated rows, from cache when
// fresh enough.
func (s *ReportService) ConsolidatedRows(ctx context.Context) ([]domain.ConsolidatedRow, bool, error) {
	if rows, ok, err := s.cache.GetRows(ctx); err == nil && ok {
		return rows, false, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("consolidated report: cache get failed")
	}

	branches, products, orders, degraded, err := s.fetchCollections(ctx)
	if err != nil {
		return nil, false, err
	}

	rows := BuildConsolidatedRows(branches, products, orders, s.cfg)

	if !degraded {
		if err := s.cache.SetRows(ctx, rows); err != nil {
			log.Warn().Err(err).Msg("consolidated report: cache set failed")
		}
	}

	return rows, degraded, nil
}

// Filtered returns the consolidated rows narrowed by filter.
func (s *ReportService) Filtered(ctx context.Context, filter domain.ReportFilter) ([]domain.ConsolidatedRow, bool, error) {
	rows, degraded, err := s.ConsolidatedRows(ctx)
	if err != nil {
		return nil, false, err
	}
	return ApplyFilters(rows, filter), degraded, nil
}

// Summary totals the filtered rows for the executive summary cards.
func (s *ReportService) Summary(ctx context.Context, filter domain.ReportFilter) (domain.ReportSummary, bool, error) {
	rows, degraded, err := s.Filtered(ctx, filter)
	if err != nil {
		return domain.ReportSummary{}, false, err
	}
	return Summarize(rows), degraded, nil
}

// Charts builds the dashboard chart datasets from the filtered rows.
func (s *ReportService) Charts(ctx context.Context, filter domain.ReportFilter) (domain.ChartData, bool, error) {
	rows, degraded, err := s.Filtered(ctx, filter)
	if err != nil {
		return domain.ChartData{}, false, err
	}
	return ChartData(rows), degraded, nil
}

// ExportCSV renders the filtered report as the legacy CSV attachment.
func (s *ReportService) ExportCSV(ctx context.Context, filter domain.ReportFilter) (string, []byte, error) {
	rows, _, err := s.Filtered(ctx, filter)
	if err != nil {
		return "", nil, err
	}
	return exportFilename("csv"), ExportCSV(rows), nil
}

// ExportXLSX renders the filtered report as a spreadsheet attachment.
func (s *ReportService) ExportXLSX(ctx context.Context, filter domain.ReportFilter) (string, []byte, error) {
	rows, _, err := s.Filtered(ctx, filter)
	if err != nil {
		return "", nil, err
	}
	payload, err := ExportXLSX(rows)
	if err != nil {
		return "", nil, err
	}
	return exportFilename("xlsx"), payload, nil
}

func (s *ReportService) fetchCollections(ctx context.Context) ([]domain.Branch, []domain.Product, []domain.OrderLine, bool, error) {
	branches, products, orders, err := fetchAll(ctx, s.gw)
	if err == nil {
		return branches, products, orders, false, nil
	}
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		return nil, nil, nil, false, err
	}

	log.Warn().Err(err).Msg("consolidated report degraded to demo data")
	branches, products, orders, err = fetchAll(ctx, s.fallback)
	if err != nil {
		return nil, nil, nil, false, fmt.Errorf("demo dataset fetch failed: %w", err)
	}
	return branches, products, orders, true, nil
}

func fetchAll(ctx context.Context, gw repository.Gateway) ([]domain.Branch, []domain.Product, []domain.OrderLine, error) {
	var (
		branches []domain.Branch
		products []domain.Product
		orders   []domain.OrderLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		branches, err = gw.Branches.ListBranches(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = gw.Products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = gw.Orders.ListAllOrderLines(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return branches, products, orders, nil
}

func exportFilename(ext string) string {
	return fmt.Sprintf("relatorio-consolidado-%s.%s", time.Now().Format("2006-01-02"), ext)
}
