package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS filiais (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		nome TEXT NOT NULL,
		codigo TEXT NOT NULL UNIQUE,
		empresa TEXT NOT NULL DEFAULT '',
		departamento TEXT NOT NULL DEFAULT '',
		posto TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS produtos (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		codigo TEXT NOT NULL UNIQUE,
		item TEXT NOT NULL,
		descricao TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pedidos (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		filial_id TEXT NOT NULL REFERENCES filiais(id),
		produto_id TEXT NOT NULL REFERENCES produtos(id),
		periodo TEXT NOT NULL DEFAULT '',
		quantidade DOUBLE PRECISION NOT NULL DEFAULT 0,
		valor_unitario DOUBLE PRECISION NOT NULL DEFAULT 0,
		valor_total DOUBLE PRECISION NOT NULL DEFAULT 0,
		n_serventes DOUBLE PRECISION NOT NULL DEFAULT 0,
		ordem_compra TEXT NOT NULL DEFAULT '',
		realizado_per_capita DOUBLE PRECISION NOT NULL DEFAULT 0,
		acumulado_total DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'rascunho',
		data_lancamento TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (filial_id, produto_id)
	)`,
}

func runSchema(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Println("schema is up to date")
	return nil
}
