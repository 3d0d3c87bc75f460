package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pedidosfiliais/backend-go/internal/domain"
)

type branchRepository struct {
	db *DB
}

func NewBranchRepository(db *DB) *branchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT id, nome, codigo, empresa, departamento, posto, created_at
		FROM filiais
		ORDER BY nome
	`

	var branches []domain.Branch
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", mapSchemaErr(err))
	}

	return branches, nil
}

func (r *branchRepository) GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	query := `
		SELECT id, nome, codigo, empresa, departamento, posto, created_at
		FROM filiais
		WHERE codigo = $1
	`

	var branch domain.Branch
	if err := r.db.GetContext(ctx, &branch, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("branch %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get branch by code: %w", mapSchemaErr(err))
	}

	return &branch, nil
}
