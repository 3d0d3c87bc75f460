package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// CatalogService serves the admin product catalog editor. Writes against a
// missing schema are applied to the in-memory demonstration catalog instead,
// mirroring the simulated-save behavior of the original screen.
type CatalogService struct {
	gw       repository.Gateway
	fallback repository.Gateway
	cache    cache.ReportCache
}

func NewCatalogService(gw, fallback repository.Gateway, reportCache cache.ReportCache) *CatalogService {
	if reportCache == nil {
		reportCache = cache.NewNoopReportCache()
	}
	return &CatalogService{gw: gw, fallback: fallback, cache: reportCache}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, bool, error) {
	products, err := s.gw.Products.ListProducts(ctx)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("product catalog degraded to demo data")
		products, err = s.fallback.Products.ListProducts(ctx)
		return products, true, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to list products: %w", err)
	}
	return products, false, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, bool, error) {
	if err := validateProductInput(input); err != nil {
		return nil, false, err
	}

	product, err := s.gw.Products.CreateProduct(ctx, input)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("product create degraded to demo data")
		product, err = s.fallback.Products.CreateProduct(ctx, input)
		return product, true, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateReport(ctx)
	return product, false, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, bool, error) {
	if err := validateProductInput(input); err != nil {
		return nil, false, err
	}

	product, err := s.gw.Products.UpdateProduct(ctx, id, input)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("product update degraded to demo data")
		product, err = s.fallback.Products.UpdateProduct(ctx, id, input)
		return product, true, err
	}
	if err != nil {
		return nil, false, err
	}

	s.invalidateReport(ctx)
	return product, false, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	err := s.gw.Products.DeleteProduct(ctx, id)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("product delete degraded to demo data")
		return true, s.fallback.Products.DeleteProduct(ctx, id)
	}
	if err != nil {
		return false, err
	}

	s.invalidateReport(ctx)
	return false, nil
}

func (s *CatalogService) ListBranches(ctx context.Context) ([]domain.Branch, bool, error) {
	branches, err := s.gw.Branches.ListBranches(ctx)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("branch list degraded to demo data")
		branches, err = s.fallback.Branches.ListBranches(ctx)
		return branches, true, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, false, nil
}

func (s *CatalogService) GetBranchByCode(ctx context.Context, code string) (*domain.Branch, bool, error) {
	branch, err := s.gw.Branches.GetBranchByCode(ctx, code)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn().Err(err).Msg("branch lookup degraded to demo data")
		branch, err = s.fallback.Branches.GetBranchByCode(ctx, code)
		return branch, true, err
	}
	if err != nil {
		return nil, false, err
	}
	return branch, false, nil
}

func (s *CatalogService) invalidateReport(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate consolidated report cache")
	}
}

func validateProductInput(input domain.ProductInput) error {
	if strings.TrimSpace(input.Code) == "" ||
		strings.TrimSpace(input.Item) == "" ||
		strings.TrimSpace(input.Description) == "" {
		return &domain.ValidationError{Reason: domain.ReasonIncompleteFields, Codes: []string{input.Code}}
	}
	return nil
}
