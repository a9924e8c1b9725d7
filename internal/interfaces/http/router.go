package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/oficina-manager/internal/application/analytics"
	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/auth"
	"github.com/jhoicas/oficina-manager/internal/application/billing"
	"github.com/jhoicas/oficina-manager/internal/application/budget"
	"github.com/jhoicas/oficina-manager/internal/application/carflow"
	"github.com/jhoicas/oficina-manager/internal/application/expenses"
	"github.com/jhoicas/oficina-manager/internal/application/inventory"
	"github.com/jhoicas/oficina-manager/internal/application/notify"
	"github.com/jhoicas/oficina-manager/internal/application/payroll"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/application/problems"
	"github.com/jhoicas/oficina-manager/internal/application/staff"
	"github.com/jhoicas/oficina-manager/internal/application/usecase"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CarFlow       *carflow.UseCase
	Budgets       *budget.UseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Staff         *staff.UseCase
	Payroll       *payroll.UseCase
	Expenses      *expenses.UseCase
	Billing       *billing.UseCase
	Problems      *problems.UseCase
	Profile       *usecase.ProfileUseCase
	Audit         *audit.UseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Notifications *notify.Center
	Clock         ports.Clock
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	carHandler := NewCarHandler(deps.CarFlow)
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Replenishment)
	staffHandler := NewStaffHandler(deps.Staff)
	problemHandler := NewProblemHandler(deps.Problems)
	notificationHandler := NewNotificationHandler(deps.Notifications, entity.AudienceDashboard)
	storeNotificationHandler := NewNotificationHandler(deps.Notifications, entity.AudienceAll)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Dashboard: token del portal dashboard. me/subscribe quedan fuera del control
	// de suscripción para poder reactivar una prueba vencida.
	session := api.Group("/auth", AuthMiddleware(deps.JWTSecret), RequirePortal(jwt.PortalDashboard))
	session.Get("/me", authHandler.Me)
	session.Post("/subscribe", authHandler.Subscribe)

	// Cadena del portal dashboard, aplicada grupo a grupo.
	dash := []fiber.Handler{
		AuthMiddleware(deps.JWTSecret),
		RequirePortal(jwt.PortalDashboard),
		RequireActiveSubscription(deps.AuthUC),
	}

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Group("/dashboard", dash...).Get("/summary", dashboardHandler.GetSummary)

	cars := api.Group("/cars", dash...)
	cars.Post("/", carHandler.Create)
	cars.Get("/", carHandler.List)
	cars.Get("/:id", carHandler.Get)
	cars.Post("/:id/read", carHandler.MarkRead)
	cars.Post("/:id/revert", carHandler.RevertStage)
	cars.Post("/:id/problems/:entryId/resolve", carHandler.ResolveProblem)

	budgetHandler := NewBudgetHandler(deps.Budgets)
	budgets := api.Group("/budgets", dash...)
	budgets.Post("/", budgetHandler.Create)
	budgets.Get("/", budgetHandler.List)
	budgets.Get("/:id", budgetHandler.Get)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Patch("/:id/status", budgetHandler.UpdateStatus)
	budgets.Post("/:id/convert", budgetHandler.Convert)
	budgets.Get("/:id/pdf", budgetHandler.PDF)

	stock := api.Group("/stock", dash...)
	stock.Post("/items", inventoryHandler.CreateItem)
	stock.Get("/items", inventoryHandler.ListItems)
	stock.Get("/items/:id", inventoryHandler.GetItem)
	stock.Put("/items/:id", inventoryHandler.UpdateItem)
	stock.Delete("/items/:id", inventoryHandler.DeleteItem)
	stock.Post("/movements", inventoryHandler.RegisterMovement)
	stock.Get("/movements", inventoryHandler.ListMovements)
	stock.Get("/low", inventoryHandler.LowStock)
	stock.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	employees := api.Group("/employees", dash...)
	employees.Post("/", staffHandler.Create)
	employees.Get("/", staffHandler.List)
	employees.Get("/:id", staffHandler.Get)
	employees.Put("/:id", staffHandler.Update)
	employees.Delete("/:id", staffHandler.Delete)
	employees.Get("/:id/activity", staffHandler.Activity)

	payrollHandler := NewPayrollHandler(deps.Payroll, deps.Clock)
	pay := api.Group("/payroll", dash...)
	pay.Get("/summary", payrollHandler.Summary)
	pay.Post("/payments", payrollHandler.Pay)
	pay.Get("/payments", payrollHandler.ListPayments)
	pay.Get("/payments/:id/receipt", payrollHandler.Receipt)

	expenseHandler := NewExpenseHandler(deps.Expenses)
	exp := api.Group("/expenses", dash...)
	exp.Post("/", expenseHandler.Create)
	exp.Get("/", expenseHandler.List)
	exp.Get("/summary", expenseHandler.Summary)
	exp.Delete("/:id", expenseHandler.Delete)

	invoiceHandler := NewInvoiceHandler(deps.Billing)
	invoices := api.Group("/invoices", dash...)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Get("/:id/xml", invoiceHandler.GetXML)

	probs := api.Group("/problems", dash...)
	probs.Get("/", problemHandler.List)
	probs.Post("/:id/resolve", problemHandler.Resolve)

	profileHandler := NewProfileHandler(deps.Profile)
	profile := api.Group("/profile", dash...)
	profile.Get("/", profileHandler.Get)
	profile.Put("/", profileHandler.Update)

	auditHandler := NewAuditHandler(deps.Audit)
	auditGroup := api.Group("/audit", dash...)
	auditGroup.Get("/", auditHandler.List)
	auditGroup.Get("/export", auditHandler.ExportCSV)

	notifications := api.Group("/notifications", dash...)
	notifications.Get("/", notificationHandler.Active)
	notifications.Delete("/:id", notificationHandler.Dismiss)

	// Portal de loja
	api.Post("/store/login", authHandler.StoreLogin)
	store := api.Group("/store", AuthMiddleware(deps.JWTSecret), RequirePortal(jwt.PortalStore))
	store.Get("/cars", carHandler.ListInProgress)
	store.Get("/cars/:id", carHandler.Get)
	store.Post("/cars/:id/complete", carHandler.CompleteStage)
	store.Post("/cars/:id/problems", carHandler.ReportProblem)
	store.Post("/cars/:id/photos", carHandler.AddPhotos)
	store.Post("/problems", problemHandler.Report)
	store.Get("/employees", staffHandler.List)
	store.Get("/stock", inventoryHandler.ListItems)
	store.Post("/stock/movements", RequireRole(string(entity.RoleStoreManager)), inventoryHandler.RegisterMovement)
	store.Get("/notifications", storeNotificationHandler.Active)
	store.Delete("/notifications/:id", storeNotificationHandler.Dismiss)
}
