package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/api/handlers"
	"github.com/pedidosfiliais/backend-go/internal/api/middleware"
	"github.com/pedidosfiliais/backend-go/internal/service"
)

type Services struct {
	Orders  *service.OrderService
	Reports *service.ReportService
	Catalog *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Catalog != nil {
			branchHandler := handlers.NewBranchHandler(services.Catalog)
			branchGroup := apiGroup.Group("/branches")
			{
				branchGroup.GET("", branchHandler.ListBranches)
				branchGroup.GET("/:code", branchHandler.GetBranchByCode)
			}

			productHandler := handlers.NewProductHandler(services.Catalog)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.ListProducts)
				productGroup.POST("", productHandler.CreateProduct)
				productGroup.PUT("/:id", productHandler.UpdateProduct)
				productGroup.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		if services.Orders != nil {
			orderHandler := handlers.NewOrderHandler(services.Orders)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.GET("/form", orderHandler.GetForm)
				orderGroup.POST("/recalculate", orderHandler.Recalculate)
				orderGroup.POST("/save", orderHandler.Save)
				orderGroup.POST("/submit", orderHandler.Submit)
			}
		}

		if services.Reports != nil {
			reportHandler := handlers.NewReportHandler(services.Reports)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/consolidated", reportHandler.GetConsolidated)
				reportGroup.GET("/summary", reportHandler.GetSummary)
				reportGroup.GET("/charts", reportHandler.GetCharts)
				reportGroup.GET("/export", reportHandler.ExportCSV)
				reportGroup.GET("/export.xlsx", reportHandler.ExportXLSX)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
