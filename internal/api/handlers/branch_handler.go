package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/service"
)

type BranchHandler struct {
	catalog *service.CatalogService
}

func NewBranchHandler(catalog *service.CatalogService) *BranchHandler {
	return &BranchHandler{catalog: catalog}
}

// ListBranches returns the branches for the login selector, sorted by name.
func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, degraded, err := h.catalog.ListBranches(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branches, "degraded": degraded})
}

// GetBranchByCode resolves a branch by its login code.
func (h *BranchHandler) GetBranchByCode(c *gin.Context) {
	branch, degraded, err := h.catalog.GetBranchByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch, "degraded": degraded})
}
