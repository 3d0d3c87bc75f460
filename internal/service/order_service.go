package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// OrderService runs the order entry workflow: form loading, field updates,
// validation and the save/submit upsert cycle. When the real store reports
// itself unavailable the service degrades to the demonstration gateway and
// keeps going; degradation is reported to the caller, never as an error.
type OrderService struct {
	gw       repository.Gateway
	fallback repository.Gateway
	cache    cache.ReportCache
}

func NewOrderService(gw, fallback repository.Gateway, reportCache cache.ReportCache) *OrderService {
	if reportCache == nil {
		reportCache = cache.NewNoopReportCache()
	}
	return &OrderService{gw: gw, fallback: fallback, cache: reportCache}
}

// LoadForm assembles the order entry snapshot for a branch: its reference
// data, one line per catalog product (persisted values when present) and an
// active set covering every product.
func (s *OrderService) LoadForm(ctx context.Context, branchCode string) (*domain.OrderForm, bool, error) {
	degraded := false

	branch, err := s.gw.Branches.GetBranchByCode(ctx, branchCode)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("branch lookup degraded to demo data")
		degraded = true
		branch, err = s.fallback.Branches.GetBranchByCode(ctx, branchCode)
	}
	if err != nil {
		return nil, false, err
	}

	products, err := s.gw.Products.ListProducts(ctx)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("product list degraded to demo data")
		degraded = true
		products, err = s.fallback.Products.ListProducts(ctx)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load products: %w", err)
	}

	existing, err := s.gw.Orders.ListOrderLines(ctx, branch.ID)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("order lines degraded to demo data")
		degraded = true
		existing, err = s.fallback.Orders.ListOrderLines(ctx, branch.ID)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load order lines: %w", err)
	}

	lines := InitializeLines(branch.ID, products, existing)

	active := make([]string, 0, len(lines))
	period := ""
	for _, line := range lines {
		active = append(active, line.ProductID)
		if period == "" && line.ID != "" {
			period = line.Period
		}
	}

	return &domain.OrderForm{
		Branch:     *branch,
		Products:   products,
		Lines:      lines,
		ActiveIDs:  active,
		Period:     period,
		LaunchDate: time.Now().Format("2006-01-02"),
	}, degraded, nil
}

// UpdateLine applies one field edit to the submitted snapshot and returns
// the recomputed lines.
func (s *OrderService) UpdateLine(lines []domain.OrderLine, productID string, update domain.FieldUpdate) []domain.OrderLine {
	return ApplyUpdate(lines, productID, update)
}

// Save validates the snapshot and persists the active lines as drafts. On
// success the returned form is cleared for the next entry cycle. A
// validation failure aborts before any write; a persistence failure leaves
// the submitted snapshot untouched so the user can retry.
func (s *OrderService) Save(ctx context.Context, form *domain.OrderForm) (*domain.OrderForm, bool, error) {
	active := toActiveSet(form.ActiveIDs)

	if err := ValidateForSave(form.Lines, active, form.Products, form.Period, form.LaunchDate); err != nil {
		return nil, false, err
	}

	toInsert, toUpdate := Reconcile(form.Lines, active)

	degraded, err := s.persist(ctx, form, append(toInsert, toUpdate...), domain.StatusDraft, true)
	if err != nil {
		return nil, false, err
	}

	s.invalidateReport(ctx)

	return &domain.OrderForm{
		Branch:     form.Branch,
		Products:   form.Products,
		Lines:      ClearForm(form.Lines),
		ActiveIDs:  []string{},
		Period:     "",
		LaunchDate: time.Now().Format("2006-01-02"),
	}, degraded, nil
}

// Submit persists every line of the snapshot, active or not, with status
// submitted. The active-only restriction applies to save alone; send has
// always covered the whole form.
func (s *OrderService) Submit(ctx context.Context, form *domain.OrderForm) (*domain.OrderForm, bool, error) {
	degraded, err := s.persist(ctx, form, form.Lines, domain.StatusSubmitted, false)
	if err != nil {
		return nil, false, err
	}

	s.invalidateReport(ctx)

	refreshed, reloadDegraded, err := s.LoadForm(ctx, form.Branch.Code)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload form after submit: %w", err)
	}
	return refreshed, degraded || reloadDegraded, nil
}

// persist upserts the given lines carrying the form's branch, period and
// status. A missing schema turns the whole batch into a no-op simulated
// save; any other write error aborts immediately.
func (s *OrderService) persist(ctx context.Context, form *domain.OrderForm, lines []domain.OrderLine, status string, stampLaunchDate bool) (bool, error) {
	for _, line := range lines {
		line.BranchID = form.Branch.ID
		line.Period = form.Period
		line.Status = status
		if stampLaunchDate {
			line.LaunchDate = form.LaunchDate
		}

		if _, err := s.gw.Orders.UpsertOrderLine(ctx, line); err != nil {
			if errors.Is(err, domain.ErrBackendUnavailable) {
				log.Warn().Err(err).Msg("order persistence skipped, backend unavailable")
				return true, nil
			}
			return false, fmt.Errorf("failed to persist order line for product %s: %w", line.ProductID, err)
		}
	}
	return false, nil
}

func (s *OrderService) invalidateReport(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate consolidated report cache")
	}
}

func toActiveSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
