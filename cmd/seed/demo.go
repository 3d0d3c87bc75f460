package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

type seedBranch struct {
	name, code, company, department, post string
}

type seedProduct struct {
	code, item, description string
}

var seedBranches = []seedBranch{
	{"São Paulo - Centro", "sp-centro", "Empresa ABC Ltda", "Operações", "Filial Regional"},
	{"Rio de Janeiro - Copacabana", "rj-copacabana", "Empresa ABC Ltda", "Operações", "Filial Regional"},
	{"Belo Horizonte - Centro", "mg-centro", "Empresa ABC Ltda", "Operações", "Filial Regional"},
	{"Porto Alegre - Centro", "rs-centro", "Empresa ABC Ltda", "Operações", "Filial Regional"},
}

var seedProducts = []seedProduct{
	{"MAT001", "Material de Limpeza", "Detergente neutro 5L"},
	{"MAT002", "Material de Escritório", "Papel A4 500 folhas"},
	{"MAT003", "Equipamento de Segurança", "Capacete de proteção"},
	{"MAT004", "Material de Higiene", "Papel higiênico 12 rolos"},
	{"MAT005", "Equipamento de Limpeza", "Vassoura de piaçava"},
}

func runDemoSeed(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	for _, b := range seedBranches {
		_, err := db.ExecContext(c.Context, `
			INSERT INTO filiais (nome, codigo, empresa, departamento, posto)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (codigo) DO NOTHING
		`, b.name, b.code, b.company, b.department, b.post)
		if err != nil {
			return fmt.Errorf("failed to seed branch %s: %w", b.code, err)
		}
	}

	for _, p := range seedProducts {
		_, err := db.ExecContext(c.Context, `
			INSERT INTO produtos (codigo, item, descricao)
			VALUES ($1, $2, $3)
			ON CONFLICT (codigo) DO NOTHING
		`, p.code, p.item, p.description)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.code, err)
		}
	}

	log.Printf("seeded %d branches and %d products", len(seedBranches), len(seedProducts))
	return nil
}
