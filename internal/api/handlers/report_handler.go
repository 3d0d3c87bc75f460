package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func reportFilter(c *gin.Context) domain.ReportFilter {
	return domain.ReportFilter{
		BranchSubstring: c.Query("branch"),
		Status:          c.Query("status"),
	}
}

// GetConsolidated returns the filtered consolidated rows.
func (h *ReportHandler) GetConsolidated(c *gin.Context) {
	rows, degraded, err := h.reports.Filtered(c.Request.Context(), reportFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows, "degraded": degraded})
}

// GetSummary returns the executive summary over the filtered rows.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, degraded, err := h.reports.Summary(c.Request.Context(), reportFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary, "degraded": degraded})
}

// GetCharts returns the dashboard chart datasets.
func (h *ReportHandler) GetCharts(c *gin.Context) {
	charts, degraded, err := h.reports.Charts(c.Request.Context(), reportFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": charts, "degraded": degraded})
}

// ExportCSV streams the filtered report as a CSV attachment.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename, payload, err := h.reports.ExportCSV(c.Request.Context(), reportFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// ExportXLSX streams the filtered report as a spreadsheet attachment.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	filename, payload, err := h.reports.ExportXLSX(c.Request.Context(), reportFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
