package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

// The 16 report columns, by human-readable label, in the order the admin
// screen shows them.
var reportColumns = []string{
	"Empresa",
	"Departamento",
	"Posto",
	"Filial",
	"Previsto Per Capita",
	"Nº Serventes",
	"Previsto Total CTR",
	"Meses Acumulados",
	"Previsto Total Filial",
	"Nº Ordem Compra",
	"Realizado Per Capita",
	"Acumulado Total",
	"Acumulado Previsto",
	"Diferença Sobre Previsto",
	"Percentual Variação",
	"Status",
}

// ExportCSV renders the header row plus one comma-joined line per row.
// Fields are not quoted or escaped; a comma inside a field breaks the column
// layout, matching the legacy export.
func ExportCSV(rows []domain.ConsolidatedRow) []byte {
	var sb strings.Builder
	sb.WriteString(strings.Join(reportColumns, ","))
	for _, row := range rows {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(reportValues(row), ","))
	}
	return []byte(sb.String())
}

// ExportXLSX renders the same report as a spreadsheet.
func ExportXLSX(rows []domain.ConsolidatedRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.Company,
			row.Department,
			row.Post,
			row.BranchName,
			row.PlannedPerCapita,
			row.Headcount,
			row.PlannedTotalPeriod,
			row.AccumulatedMonths,
			row.PlannedTotalAccumulated,
			row.PurchaseOrder,
			row.RealizedPerCapita,
			row.ActualAccumulated,
			row.PlannedTotalAccumulated,
			row.Variance,
			row.PercentVariance,
			row.Status,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func reportValues(row domain.ConsolidatedRow) []string {
	return []string{
		row.Company,
		row.Department,
		row.Post,
		row.BranchName,
		formatNumber(row.PlannedPerCapita),
		formatNumber(row.Headcount),
		formatNumber(row.PlannedTotalPeriod),
		strconv.Itoa(row.AccumulatedMonths),
		formatNumber(row.PlannedTotalAccumulated),
		row.PurchaseOrder,
		formatNumber(row.RealizedPerCapita),
		formatNumber(row.ActualAccumulated),
		formatNumber(row.PlannedTotalAccumulated),
		formatNumber(row.Variance),
		formatNumber(row.PercentVariance),
		row.Status,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
