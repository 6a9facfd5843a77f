package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/analytics"
	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/backup"
	"github.com/jhoicas/Gimnasio-api/internal/application/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/application/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/application/pos"
	"github.com/jhoicas/Gimnasio-api/internal/application/reports"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	PlanUC           *usecase.PlanUseCase
	ClientUC         *usecase.ClientUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Carts            *pos.CartService
	SaleUC           *pos.SaleUseCase
	EmployeeUC       *payroll.EmployeeUseCase
	PayrollUC        *payroll.PayrollUseCase
	ReportUC         *reports.UseCase
	DashboardUC      *analytics.DashboardUseCase
	Backup           *backup.Service
	JWTSecret        string
}

// Router registra las rutas de la API.
//
// Roles: admin tiene acceso a todo. recepcion atiende clientes, caja (POS), compras de
// inventario y el dashboard; consulta planes y productos sin modificarlos.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleRecepcion)

	// Auth: login público; el alta de usuarios la hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", admin, authHandler.Register)
	protected.Get("/auth/me", staff, authHandler.Me)
	protected.Get("/auth/users", admin, authHandler.ListUsers)

	// Planes
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", staff, planHandler.List)
	plans.Get("/:id", staff, planHandler.Get)
	plans.Post("/", admin, planHandler.Create)
	plans.Put("/:id", admin, planHandler.Update)
	plans.Delete("/:id", admin, planHandler.Delete)

	// Clientes y membresías
	clients := protected.Group("/clients", staff)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/expiring", clientHandler.Expiring)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", admin, clientHandler.Delete)
	clients.Post("/:id/renew", clientHandler.Renew)
	clients.Get("/:id/payments", clientHandler.Payments)

	// Productos y lotes
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery, deps.Replenishment)
	products.Get("/", staff, productHandler.List)
	products.Get("/categories", staff, productHandler.Categories)
	products.Get("/:id", staff, productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
	products.Get("/:id/lots", staff, inventoryHandler.ListLots)
	products.Post("/:id/purchases", staff, inventoryHandler.RegisterPurchase)
	products.Post("/:id/adjustments", admin, inventoryHandler.AdjustStock)

	// Inventario
	invGroup := protected.Group("/inventory", admin)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/valuation", inventoryHandler.Valuation)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Punto de venta
	posHandler := NewPOSHandler(deps.Carts, deps.SaleUC)
	posGroup := protected.Group("/pos", staff)
	posGroup.Get("/cart", posHandler.GetCart)
	posGroup.Delete("/cart", posHandler.ClearCart)
	posGroup.Post("/cart/items", posHandler.AddItem)
	posGroup.Put("/cart/items/:productId", posHandler.SetQuantity)
	posGroup.Delete("/cart/items/:productId", posHandler.RemoveItem)
	posGroup.Post("/checkout", posHandler.Checkout)

	sales := protected.Group("/sales", staff)
	sales.Get("/", posHandler.ListSales)
	sales.Post("/", posHandler.CreateSale)
	sales.Get("/:id", posHandler.GetSale)
	sales.Get("/:id/receipt", posHandler.Receipt)
	sales.Post("/:id/void", admin, posHandler.VoidSale)

	// Empleados y nómina
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees", admin)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	payrollGroup := protected.Group("/payroll", admin)
	payrollGroup.Get("/", payrollHandler.List)
	payrollGroup.Post("/generate", payrollHandler.Generate)
	payrollGroup.Post("/pay", payrollHandler.Pay)
	payrollGroup.Get("/:id", payrollHandler.Get)
	payrollGroup.Get("/:id/receipt", payrollHandler.Receipt)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup := protected.Group("/reports", admin)
	reportGroup.Get("/sales", reportHandler.Sales)
	reportGroup.Get("/inventory", reportHandler.Inventory)
	reportGroup.Get("/memberships", reportHandler.Memberships)
	reportGroup.Get("/payroll", reportHandler.Payroll)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", staff, dashboardHandler.GetSummary)

	// Respaldos
	backupHandler := NewBackupHandler(deps.Backup)
	backups := protected.Group("/backups", admin)
	backups.Get("/", backupHandler.List)
	backups.Post("/", backupHandler.Create)
}
