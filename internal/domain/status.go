package domain

import "strings"

// Order line lifecycle. A submitted line is terminal; the next period starts
// over with a fresh draft.
const (
	StatusDraft     = "rascunho"
	StatusSubmitted = "enviado"

	// ReportStatusPending is how a draft line shows up on the consolidated
	// report.
	ReportStatusPending = "pendente"
)

// Reporting cadence buckets.
const (
	PeriodMonthly    = "mensal"
	PeriodQuarterly  = "trimestral"
	PeriodSemiannual = "semestral"
	PeriodAnnual     = "anual"
)

var validPeriods = map[string]bool{
	PeriodMonthly:    true,
	PeriodQuarterly:  true,
	PeriodSemiannual: true,
	PeriodAnnual:     true,
}

// ValidPeriod reports whether label is a known period (case-insensitive).
func ValidPeriod(label string) bool {
	return validPeriods[strings.ToLower(label)]
}

// ReportStatus maps an order line status to its report label.
func ReportStatus(lineStatus string) string {
	if lineStatus == StatusSubmitted {
		return StatusSubmitted
	}
	return ReportStatusPending
}
