package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pedidosfiliais/backend-go/internal/domain"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, codigo, item, descricao, created_at
		FROM produtos
		ORDER BY codigo
	`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", mapSchemaErr(err))
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	query := `
		INSERT INTO produtos (codigo, item, descricao, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, codigo, item, descricao, created_at
	`

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, input.Code, input.Item, input.Description); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", mapSchemaErr(err))
	}

	return &product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	query := `
		UPDATE produtos
		SET codigo = $2, item = $3, descricao = $4
		WHERE id = $1
		RETURNING id, codigo, item, descricao, created_at
	`

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id, input.Code, input.Item, input.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product: %w", mapSchemaErr(err))
	}

	return &product, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapSchemaErr(err))
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
