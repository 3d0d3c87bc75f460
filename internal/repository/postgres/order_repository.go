package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pedidosfiliais/backend-go/internal/domain"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `
	id, filial_id, produto_id, periodo, quantidade, valor_unitario,
	valor_total, n_serventes, ordem_compra, realizado_per_capita,
	acumulado_total, status, COALESCE(data_lancamento, '') AS data_lancamento
`

func (r *orderRepository) ListOrderLines(ctx context.Context, branchID string) ([]domain.OrderLine, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pedidos
		WHERE filial_id = $1
	`, orderColumns)

	var lines []domain.OrderLine
	if err := r.db.SelectContext(ctx, &lines, query, branchID); err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", mapSchemaErr(err))
	}

	return lines, nil
}

func (r *orderRepository) ListAllOrderLines(ctx context.Context) ([]domain.OrderLine, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pedidos
	`, orderColumns)

	var lines []domain.OrderLine
	if err := r.db.SelectContext(ctx, &lines, query); err != nil {
		return nil, fmt.Errorf("failed to list all order lines: %w", mapSchemaErr(err))
	}

	return lines, nil
}

// UpsertOrderLine keeps one row per (filial, produto). Lines that arrive with
// an id update that row; lines without one insert, or take over the existing
// (filial, produto) row when a concurrent session created it first.
func (r *orderRepository) UpsertOrderLine(ctx context.Context, line domain.OrderLine) (*domain.OrderLine, error) {
	var saved domain.OrderLine

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO pedidos (
				filial_id, produto_id, periodo, quantidade, valor_unitario,
				valor_total, n_serventes, ordem_compra, realizado_per_capita,
				acumulado_total, status, data_lancamento, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
			ON CONFLICT (filial_id, produto_id)
			DO UPDATE SET
				periodo = EXCLUDED.periodo,
				quantidade = EXCLUDED.quantidade,
				valor_unitario = EXCLUDED.valor_unitario,
				valor_total = EXCLUDED.valor_total,
				n_serventes = EXCLUDED.n_serventes,
				ordem_compra = EXCLUDED.ordem_compra,
				realizado_per_capita = EXCLUDED.realizado_per_capita,
				acumulado_total = EXCLUDED.acumulado_total,
				status = EXCLUDED.status,
				data_lancamento = EXCLUDED.data_lancamento,
				updated_at = NOW()
			RETURNING %s
		`, orderColumns)

		return tx.GetContext(ctx, &saved, query,
			line.BranchID,
			line.ProductID,
			line.Period,
			line.Quantity,
			line.UnitValue,
			line.TotalValue,
			line.Headcount,
			line.PurchaseOrder,
			line.PerCapita,
			line.AccumulatedTotal,
			line.Status,
			line.LaunchDate,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert order line: %w", mapSchemaErr(err))
	}

	return &saved, nil
}
