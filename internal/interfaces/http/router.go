package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/auth"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/usecase"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	MaterialUC   *usecase.MaterialUseCase
	ReceivingUC  *inventory.ReceivingUseCase
	IssueUC      *inventory.IssueUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	OpnameUC     *inventory.OpnameUseCase
	StockUC      *inventory.StockUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportUC     *analytics.ReportUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	const (
		admin     = entity.RoleAdmin
		warehouse = entity.RoleWarehouse
		headChef  = entity.RoleHeadChef
	)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Materials
	materialHandler := NewMaterialHandler(deps.MaterialUC, log)
	protected.Get("/materials", materialHandler.List)
	protected.Get("/materials/:id", materialHandler.GetByID)
	protected.Post("/materials", RequireRole(admin, warehouse), materialHandler.Create)
	protected.Put("/materials/:id", RequireRole(admin, warehouse), materialHandler.Update)

	// Receivings (barang masuk)
	receivingHandler := NewReceivingHandler(deps.ReceivingUC, log)
	protected.Get("/receivings", receivingHandler.List)
	protected.Get("/receivings/:id", receivingHandler.GetByID)
	protected.Post("/receivings", RequireRole(admin, warehouse), receivingHandler.Create)

	// Issues (barang keluar)
	issueHandler := NewIssueHandler(deps.IssueUC, log)
	protected.Post("/issues", RequireRole(admin, warehouse, headChef), issueHandler.Create)

	// Stock
	stockHandler := NewStockHandler(deps.StockUC, deps.DashboardUC, log)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC, log)
	protected.Get("/stock/materials", stockHandler.ListMaterials)
	protected.Get("/stock/materials/:id/movements", stockHandler.Movements)
	protected.Get("/stock/overview", stockHandler.Overview)
	protected.Post("/stock/adjustments", RequireRole(admin), adjustmentHandler.Create)

	// Stock opname
	opnameHandler := NewOpnameHandler(deps.OpnameUC, log)
	opname := protected.Group("/opname", RequireRole(admin, warehouse))
	opname.Get("/", opnameHandler.List)
	opname.Get("/:id", opnameHandler.GetByID)
	opname.Post("/", opnameHandler.Create)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, log)
	protected.Get("/reports/stock", reportHandler.Stock)
	protected.Get("/reports/purchases", reportHandler.Purchases)
	protected.Get("/reports/waste", reportHandler.Waste)

	// Users
	userHandler := NewUserHandler(deps.UserUC, log)
	users := protected.Group("/users", RequireRole(admin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
}
