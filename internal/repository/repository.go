package repository

import (
	"context"

	"github.com/pedidosfiliais/backend-go/internal/domain"
)

// The gateway contracts are backend-agnostic: the postgres package implements
// them against the real store, the demo package against the built-in
// demonstration dataset. Every call returns domain.ErrBackendUnavailable when
// the underlying store or schema is missing; callers fall back to demo data
// instead of surfacing a fatal error.

type BranchRepository interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type OrderRepository interface {
	ListOrderLines(ctx context.Context, branchID string) ([]domain.OrderLine, error)
	ListAllOrderLines(ctx context.Context) ([]domain.OrderLine, error)
	UpsertOrderLine(ctx context.Context, line domain.OrderLine) (*domain.OrderLine, error)
}

// Gateway bundles the three collections behind one value so services can swap
// the whole backend at once when degrading to demo data.
type Gateway struct {
	Branches BranchRepository
	Products ProductRepository
	Orders   OrderRepository
}
