package service

import (
	"strings"
	"testing"

	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVHeader(t *testing.T) {
	out := string(ExportCSV(nil))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 1, "empty report is header only")

	fields := strings.Split(lines[0], ",")
	require.Len(t, fields, 16)
	assert.Equal(t, "Empresa", fields[0])
	assert.Equal(t, "Previsto Per Capita", fields[4])
	assert.Equal(t, "Acumulado Previsto", fields[12])
	assert.Equal(t, "Status", fields[15])
}

func TestExportCSVRow(t *testing.T) {
	rows := []domain.ConsolidatedRow{
		{
			Company:                 "Empresa A",
			Department:              "Operações",
			Post:                    "Posto 1",
			BranchName:              "São Paulo - Centro",
			PlannedPerCapita:        150,
			Headcount:               25,
			PlannedTotalPeriod:      3750,
			AccumulatedMonths:       3,
			PlannedTotalAccumulated: 11250,
			PurchaseOrder:           "OC-2024-001",
			RealizedPerCapita:       165.5,
			ActualAccumulated:       4137.5,
			Variance:                387.5,
			PercentVariance:         3.5,
			Status:                  domain.StatusSubmitted,
		},
	}

	out := string(ExportCSV(rows))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Empresa A,Operações,Posto 1,São Paulo - Centro,150,25,3750,3,11250,OC-2024-001,165.5,4137.5,11250,387.5,3.5,enviado",
		lines[1])
}

func TestExportCSVDoesNotEscapeCommas(t *testing.T) {
	rows := []domain.ConsolidatedRow{
		{BranchName: "Recife, Centro", AccumulatedMonths: 3, Status: domain.StatusSubmitted},
	}

	out := string(ExportCSV(rows))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], `"`, "fields are written raw, never quoted")
	assert.Len(t, strings.Split(lines[1], ","), 17, "embedded comma shifts the columns")
}

func TestExportXLSX(t *testing.T) {
	rows := []domain.ConsolidatedRow{
		{Company: "Empresa A", BranchName: "São Paulo - Centro", AccumulatedMonths: 3, Status: domain.ReportStatusPending},
	}

	out, err := ExportXLSX(rows)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
	// XLSX is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}
