package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/server/handlers"
)

// Handlers bundles the HTTP adapters wired into the engine.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Production *handlers.ProductionHandler
	Stock      *handlers.StockHandler
	Sales      *handlers.SalesHandler
	Reports    *handlers.ReportsHandler
}

// New wires the Gin engine with required routes and middlewares. Data entry
// is open to both roles; destructive and financial-closing operations demand
// the administrator role.
func New(h Handlers, tokens *auth.JWTManager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(metricsMiddleware())

	r.POST("/api/auth/login", h.Auth.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", authMiddleware(tokens, logger))

	api.GET("/production/batches", h.Production.List)
	api.POST("/production/batches", h.Production.Create)
	api.GET("/production/batches/:id", h.Production.Get)
	api.POST("/production/batches/:id/days", h.Production.RecordDay)
	api.POST("/production/batches/:id/expenses", h.Production.RecordExpense)
	api.POST("/production/batches/:id/vaccinations/toggle", h.Production.ToggleVaccination)
	api.GET("/production/batches/:id/growth", h.Production.Growth)

	api.GET("/stock/batches", h.Stock.List)
	api.POST("/stock/batches", h.Stock.Create)
	api.GET("/stock/batches/:id", h.Stock.Get)
	api.POST("/stock/batches/:id/chickens", h.Stock.AddChicken)
	api.DELETE("/stock/batches/:id/chickens/:chickenId", h.Stock.RemoveChicken)

	api.GET("/clients", h.Sales.ListClients)
	api.POST("/clients", h.Sales.CreateClient)

	api.GET("/sales", h.Sales.ListSales)
	api.POST("/sales", h.Sales.RecordSale)
	api.POST("/sales/:id/pay", h.Sales.MarkPaid)
	api.GET("/sales/due", h.Sales.DueCredits)

	api.GET("/reports/summaries", h.Reports.Summaries)
	api.GET("/reports/summaries/:id", h.Reports.Summary)
	api.GET("/reports/summaries/:id/pdf", h.Reports.StatementPDF)

	admin := api.Group("", requireAdmin(logger))
	admin.POST("/production/batches/:id/close", h.Production.Close)
	admin.POST("/stock/batches/:id/finalize", h.Stock.Finalize)
	admin.DELETE("/stock/batches/:id", h.Stock.Delete)
	admin.DELETE("/clients/:id", h.Sales.DeleteClient)
	admin.PUT("/auth/secret", h.Auth.UpdateSecret)
	admin.POST("/reports/export", h.Reports.Export)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
