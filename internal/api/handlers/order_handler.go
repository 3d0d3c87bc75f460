package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetForm loads the order entry snapshot for the branch given by
// ?branch=<code>: one line per catalog product, persisted values included.
func (h *OrderHandler) GetForm(c *gin.Context) {
	code := c.Query("branch")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch code is required"})
		return
	}

	form, degraded, err := h.orders.LoadForm(c.Request.Context(), code)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": form, "degraded": degraded})
}

type recalculateRequest struct {
	Lines     []domain.OrderLine `json:"lines" binding:"required"`
	ProductID string             `json:"product_id" binding:"required"`
	Field     string             `json:"field" binding:"required"`
	Value     any                `json:"value"`
}

// Recalculate applies one field edit to the submitted snapshot and returns
// the lines with their derived fields recomputed.
func (h *OrderHandler) Recalculate(c *gin.Context) {
	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recalculate payload"})
		return
	}

	update, err := domain.ParseFieldUpdate(req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := h.orders.UpdateLine(req.Lines, req.ProductID, update)
	c.JSON(http.StatusOK, gin.H{"data": lines})
}

// Save persists the active lines as drafts and returns the cleared form.
func (h *OrderHandler) Save(c *gin.Context) {
	var form domain.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order form payload"})
		return
	}

	cleared, degraded, err := h.orders.Save(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cleared, "degraded": degraded})
}

// Submit sends every line to the administration and returns the refreshed
// form.
func (h *OrderHandler) Submit(c *gin.Context) {
	var form domain.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order form payload"})
		return
	}

	refreshed, degraded, err := h.orders.Submit(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": refreshed, "degraded": degraded})
}
