package service

import (
	"context"
	"testing"

	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository"
	"github.com/pedidosfiliais/backend-go/internal/repository/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unavailableGateway fails every read with the backend-unavailable sentinel,
// simulating a store with no schema.
type unavailableGateway struct{}

func (unavailableGateway) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) DeleteProduct(ctx context.Context, id string) error {
	return domain.ErrBackendUnavailable
}

func (unavailableGateway) ListOrderLines(ctx context.Context, branchID string) ([]domain.OrderLine, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) ListAllOrderLines(ctx context.Context) ([]domain.OrderLine, error) {
	return nil, domain.ErrBackendUnavailable
}

func (unavailableGateway) UpsertOrderLine(ctx context.Context, line domain.OrderLine) (*domain.OrderLine, error) {
	return nil, domain.ErrBackendUnavailable
}

func newUnavailableGateway() repository.Gateway {
	g := unavailableGateway{}
	return repository.Gateway{Branches: g, Products: g, Orders: g}
}

func newDemoOrderService() *OrderService {
	gw := demo.NewProvider().Gateway()
	return NewOrderService(gw, demo.NewProvider().Gateway(), cache.NewNoopReportCache())
}

func TestLoadForm(t *testing.T) {
	svc := newDemoOrderService()

	form, degraded, err := svc.LoadForm(context.Background(), "sp-centro")

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, "São Paulo - Centro", form.Branch.Name)
	require.Len(t, form.Lines, 5, "one line per catalog product")

	assert.Equal(t, "101", form.Lines[0].ID, "persisted MAT001 line is reused")
	assert.Equal(t, 25.0, form.Lines[0].Quantity)
	for _, line := range form.Lines[1:] {
		assert.Empty(t, line.ID)
		assert.Equal(t, domain.StatusDraft, line.Status)
	}

	assert.Len(t, form.ActiveIDs, 5, "every product starts active")
	assert.Equal(t, domain.PeriodMonthly, form.Period, "period comes from the persisted line")
	assert.NotEmpty(t, form.LaunchDate)
}

func TestLoadFormUnknownBranch(t *testing.T) {
	svc := newDemoOrderService()

	_, _, err := svc.LoadForm(context.Background(), "no-such-branch")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadFormDegradesToDemoData(t *testing.T) {
	svc := NewOrderService(newUnavailableGateway(), demo.NewProvider().Gateway(), cache.NewNoopReportCache())

	form, degraded, err := svc.LoadForm(context.Background(), "sp-centro")

	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Len(t, form.Lines, 5)
}

func TestSavePersistsActiveDrafts(t *testing.T) {
	provider := demo.NewProvider()
	svc := NewOrderService(provider.Gateway(), demo.NewProvider().Gateway(), cache.NewNoopReportCache())
	ctx := context.Background()

	form, _, err := svc.LoadForm(ctx, "rs-centro")
	require.NoError(t, err)

	form.Lines = svc.UpdateLine(form.Lines, "2", domain.SetQuantity{Value: 10})
	form.Lines = svc.UpdateLine(form.Lines, "2", domain.SetUnitValue{Value: 5})
	form.Lines = svc.UpdateLine(form.Lines, "2", domain.SetHeadcount{Value: 2})
	form.ActiveIDs = []string{"2"}
	form.Period = domain.PeriodMonthly

	cleared, degraded, err := svc.Save(ctx, form)

	require.NoError(t, err)
	assert.False(t, degraded)

	saved, err := provider.ListOrderLines(ctx, form.Branch.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1, "only the active line is written")
	assert.Equal(t, "2", saved[0].ProductID)
	assert.Equal(t, 50.0, saved[0].TotalValue)
	assert.Equal(t, domain.StatusDraft, saved[0].Status)
	assert.Equal(t, form.LaunchDate, saved[0].LaunchDate)

	assert.Empty(t, cleared.ActiveIDs)
	assert.Empty(t, cleared.Period)
	for _, line := range cleared.Lines {
		assert.Equal(t, 0.0, line.Quantity)
	}
}

func TestSaveValidationAbortsBeforeWrite(t *testing.T) {
	provider := demo.NewProvider()
	svc := NewOrderService(provider.Gateway(), demo.NewProvider().Gateway(), cache.NewNoopReportCache())
	ctx := context.Background()

	form, _, err := svc.LoadForm(ctx, "rs-centro")
	require.NoError(t, err)
	form.ActiveIDs = []string{"2"}
	form.Period = ""

	_, _, err = svc.Save(ctx, form)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonMissingPeriod, ve.Reason)

	saved, err := provider.ListOrderLines(ctx, form.Branch.ID)
	require.NoError(t, err)
	assert.Empty(t, saved, "nothing was written")
}

func TestSaveDegradedIsSimulated(t *testing.T) {
	svc := NewOrderService(newUnavailableGateway(), demo.NewProvider().Gateway(), cache.NewNoopReportCache())
	ctx := context.Background()

	form := &domain.OrderForm{
		Branch:     domain.Branch{ID: "1", Code: "sp-centro"},
		Products:   []domain.Product{{ID: "1", Code: "MAT001"}},
		Lines:      []domain.OrderLine{{ProductID: "1", Quantity: 1, UnitValue: 1, Headcount: 1}},
		ActiveIDs:  []string{"1"},
		Period:     domain.PeriodMonthly,
		LaunchDate: "2024-01-15",
	}

	_, degraded, err := svc.Save(ctx, form)

	require.NoError(t, err, "an unavailable backend degrades, it does not fail")
	assert.True(t, degraded)
}

func TestSubmitSendsEveryLine(t *testing.T) {
	provider := demo.NewProvider()
	svc := NewOrderService(provider.Gateway(), demo.NewProvider().Gateway(), cache.NewNoopReportCache())
	ctx := context.Background()

	form, _, err := svc.LoadForm(ctx, "sp-centro")
	require.NoError(t, err)
	// Nothing edited, one product deselected: submit still covers the full form.
	form.ActiveIDs = []string{"1"}

	refreshed, degraded, err := svc.Submit(ctx, form)

	require.NoError(t, err)
	assert.False(t, degraded)

	saved, err := provider.ListOrderLines(ctx, form.Branch.ID)
	require.NoError(t, err)
	require.Len(t, saved, 5, "every line is sent, active or not")
	for _, line := range saved {
		assert.Equal(t, domain.StatusSubmitted, line.Status)
	}

	require.Len(t, refreshed.Lines, 5)
	for _, line := range refreshed.Lines {
		assert.NotEmpty(t, line.ID, "the refreshed form sees the persisted lines")
	}
}
