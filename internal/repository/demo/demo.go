// Package demo is the built-in demonstration dataset. It backs the gateway
// interfaces entirely in memory so the application keeps working, in a
// degraded non-persistent mode, when the real store or its schema is missing.
package demo

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository"
)

// Provider holds the demonstration collections. It is selected once at
// startup (or per call when the store degrades) and implements all three
// gateway interfaces. Mutations only live as long as the process.
type Provider struct {
	mu       sync.Mutex
	branches []domain.Branch
	products []domain.Product
	orders   []domain.OrderLine
	nextID   int
}

func NewProvider() *Provider {
	p := &Provider{nextID: 1000}
	p.branches = defaultBranches()
	p.products = defaultProducts()
	p.orders = defaultOrders()
	return p
}

// Gateway exposes the provider as a repository bundle.
func (p *Provider) Gateway() repository.Gateway {
	return repository.Gateway{Branches: p, Products: p, Orders: p}
}

func (p *Provider) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Branch, len(p.branches))
	copy(out, p.branches)
	return out, nil
}

func (p *Provider) GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.branches {
		if b.Code == code {
			branch := b
			return &branch, nil
		}
	}
	return nil, fmt.Errorf("branch %s: %w", code, domain.ErrNotFound)
}

func (p *Provider) ListProducts(ctx context.Context) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, len(p.products))
	copy(out, p.products)
	return out, nil
}

func (p *Provider) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	product := domain.Product{
		ID:          p.newID(),
		Code:        input.Code,
		Item:        input.Item,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	p.products = append(p.products, product)
	return &product, nil
}

func (p *Provider) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.products {
		if p.products[i].ID == id {
			p.products[i].Code = input.Code
			p.products[i].Item = input.Item
			p.products[i].Description = input.Description
			product := p.products[i]
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

func (p *Provider) DeleteProduct(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.products {
		if p.products[i].ID == id {
			p.products = append(p.products[:i], p.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

func (p *Provider) ListOrderLines(ctx context.Context, branchID string) ([]domain.OrderLine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.OrderLine
	for _, o := range p.orders {
		if o.BranchID == branchID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (p *Provider) ListAllOrderLines(ctx context.Context) ([]domain.OrderLine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.OrderLine, len(p.orders))
	copy(out, p.orders)
	return out, nil
}

func (p *Provider) UpsertOrderLine(ctx context.Context, line domain.OrderLine) (*domain.OrderLine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.orders {
		if p.orders[i].ID == line.ID ||
			(p.orders[i].BranchID == line.BranchID && p.orders[i].ProductID == line.ProductID) {
			line.ID = p.orders[i].ID
			p.orders[i] = line
			saved := line
			return &saved, nil
		}
	}
	line.ID = p.newID()
	p.orders = append(p.orders, line)
	saved := line
	return &saved, nil
}

// newID mimics the sequential ids of the real store. Callers must hold mu.
func (p *Provider) newID() string {
	p.nextID++
	return strconv.Itoa(p.nextID)
}

func defaultBranches() []domain.Branch {
	return []domain.Branch{
		{ID: "1", Name: "São Paulo - Centro", Code: "sp-centro", Company: "Empresa ABC Ltda", Department: "Operações", Post: "Filial Regional"},
		{ID: "2", Name: "Rio de Janeiro - Copacabana", Code: "rj-copacabana", Company: "Empresa ABC Ltda", Department: "Operações", Post: "Filial Regional"},
		{ID: "3", Name: "Belo Horizonte - Centro", Code: "mg-centro", Company: "Empresa ABC Ltda", Department: "Operações", Post: "Filial Regional"},
		{ID: "4", Name: "Porto Alegre - Centro", Code: "rs-centro", Company: "Empresa ABC Ltda", Department: "Operações", Post: "Filial Regional"},
	}
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Code: "MAT001", Item: "Material de Limpeza", Description: "Detergente neutro 5L"},
		{ID: "2", Code: "MAT002", Item: "Material de Escritório", Description: "Papel A4 500 folhas"},
		{ID: "3", Code: "MAT003", Item: "Equipamento de Segurança", Description: "Capacete de proteção"},
		{ID: "4", Code: "MAT004", Item: "Material de Higiene", Description: "Papel higiênico 12 rolos"},
		{ID: "5", Code: "MAT005", Item: "Equipamento de Limpeza", Description: "Vassoura de piaçava"},
	}
}

func defaultOrders() []domain.OrderLine {
	return []domain.OrderLine{
		{
			ID: "101", BranchID: "1", ProductID: "1", Period: domain.PeriodMonthly,
			Quantity: 25, UnitValue: 165.5, TotalValue: 4137.5, Headcount: 25,
			PurchaseOrder: "OC-2024-001", PerCapita: 165.5, AccumulatedTotal: 4137.5,
			Status: domain.StatusSubmitted, LaunchDate: "2024-01-15",
		},
		{
			ID: "102", BranchID: "2", ProductID: "1", Period: domain.PeriodMonthly,
			Quantity: 20, UnitValue: 132.75, TotalValue: 2655.0, Headcount: 20,
			PurchaseOrder: "OC-2024-002", PerCapita: 132.75, AccumulatedTotal: 2655.0,
			Status: domain.StatusSubmitted, LaunchDate: "2024-01-15",
		},
		{
			ID: "103", BranchID: "3", ProductID: "1", Period: domain.PeriodMonthly,
			Quantity: 18, UnitValue: 175.2, TotalValue: 3153.6, Headcount: 18,
			PurchaseOrder: "OC-2024-003", PerCapita: 175.2, AccumulatedTotal: 3153.6,
			Status: domain.StatusDraft, LaunchDate: "2024-01-15",
		},
	}
}
