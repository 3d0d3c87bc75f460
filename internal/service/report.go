package service

import (
	"strings"

	"github.com/pedidosfiliais/backend-go/internal/config"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// BuildConsolidatedRows joins every raw order with its branch and product and
// derives the planned-vs-actual figures. Orders whose branch or product
// lookup misses are skipped, logged and never abort the aggregation.
func BuildConsolidatedRows(branches []domain.Branch, products []domain.Product, orders []domain.OrderLine, cfg config.ReportConfig) []domain.ConsolidatedRow {
	branchByID := make(map[string]domain.Branch, len(branches))
	for _, b := range branches {
		branchByID[b.ID] = b
	}
	productByID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	rows := make([]domain.ConsolidatedRow, 0, len(orders))
	for _, order := range orders {
		branch, ok := branchByID[order.BranchID]
		if !ok {
			log.Warn().Str("order_id", order.ID).Str("branch_id", order.BranchID).
				Msg("consolidated report: order references unknown branch, skipping")
			continue
		}
		product, ok := productByID[order.ProductID]
		if !ok {
			log.Warn().Str("order_id", order.ID).Str("product_id", order.ProductID).
				Msg("consolidated report: order references unknown product, skipping")
			continue
		}

		plannedPeriod := order.Headcount * cfg.PlannedPerCapita
		plannedAccumulated := plannedPeriod * float64(cfg.AccumulatedMonths)
		variance := order.AccumulatedTotal - plannedPeriod

		row := domain.ConsolidatedRow{
			ID:                      order.ID,
			Company:                 branch.Company,
			Department:              branch.Department,
			Post:                    branch.Post,
			BranchName:              branch.Name,
			ProductCode:             product.Code,
			PlannedPerCapita:        cfg.PlannedPerCapita,
			Headcount:               order.Headcount,
			PlannedTotalPeriod:      plannedPeriod,
			AccumulatedMonths:       cfg.AccumulatedMonths,
			PlannedTotalAccumulated: plannedAccumulated,
			PurchaseOrder:           order.PurchaseOrder,
			RealizedPerCapita:       order.PerCapita,
			ActualAccumulated:       order.AccumulatedTotal,
			Variance:                variance,
			Status:                  domain.ReportStatus(order.Status),
		}
		// A zero planned total leaves the percentage undefined rather than
		// dividing by zero.
		if plannedAccumulated != 0 {
			row.PercentVariance = variance / plannedAccumulated * 100
			row.PercentDefined = true
		}
		rows = append(rows, row)
	}
	return rows
}

// ApplyFilters keeps a row when the branch substring is empty or contained in
// the branch name, and the status is empty or an exact match. The substring
// match is case-sensitive.
func ApplyFilters(rows []domain.ConsolidatedRow, filter domain.ReportFilter) []domain.ConsolidatedRow {
	out := make([]domain.ConsolidatedRow, 0, len(rows))
	for _, row := range rows {
		if filter.BranchSubstring != "" && !strings.Contains(row.BranchName, filter.BranchSubstring) {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Summarize totals the given (already filtered) rows.
func Summarize(rows []domain.ConsolidatedRow) domain.ReportSummary {
	summary := domain.ReportSummary{Count: len(rows)}
	for _, row := range rows {
		summary.TotalActual += row.ActualAccumulated
		summary.TotalPlanned += row.PlannedTotalAccumulated
		if row.Status == domain.ReportStatusPending {
			summary.PendingCount++
		}
	}
	return summary
}

// ChartData derives the admin dashboard datasets: a pie of absolute percent
// variance per branch (red over plan, green under) and planned-vs-actual
// bars keyed by the short branch label.
func ChartData(rows []domain.ConsolidatedRow) domain.ChartData {
	charts := domain.ChartData{
		Variance:      make([]domain.PieSlice, 0, len(rows)),
		PlannedActual: make([]domain.BarPoint, 0, len(rows)),
	}
	for _, row := range rows {
		color := "#22c55e"
		if row.PercentVariance > 0 {
			color = "#ef4444"
		}
		value := row.PercentVariance
		if value < 0 {
			value = -value
		}
		charts.Variance = append(charts.Variance, domain.PieSlice{
			Name:  row.BranchName,
			Value: value,
			Color: color,
		})

		charts.PlannedActual = append(charts.PlannedActual, domain.BarPoint{
			Branch:   shortBranchLabel(row.BranchName),
			Planned:  row.PlannedTotalAccumulated,
			Realized: row.ActualAccumulated,
		})
	}
	return charts
}

// shortBranchLabel trims "São Paulo - Centro" down to "São Paulo" for the
// bar chart axis.
func shortBranchLabel(name string) string {
	if idx := strings.Index(name, " - "); idx >= 0 {
		return name[:idx]
	}
	return name
}
