package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oficina-manager/docs"
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
	"github.com/jhoicas/oficina-manager/internal/infrastructure/invoicexml"
	"github.com/jhoicas/oficina-manager/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/oficina-manager/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/oficina-manager/internal/interfaces/http"
	"github.com/jhoicas/oficina-manager/pkg/config"
	"github.com/jhoicas/oficina-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	var clock ports.Clock // nil = time.Now

	store := memory.NewStore()
	repos := store.Repos()
	txRunner := memory.NewTxRunner(store)
	center := notify.NewCenter(cfg.Rules.NotificationTTL, clock)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	stockUC := inventory.NewStockUseCase(txRunner, repos, center.Shared(), clock, log)
	authUC := auth.NewAuthUseCase(txRunner, repos.Users, repos.Employees, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Rules.TrialDays, clock)
	budgetUC := budget.NewUseCase(txRunner, repos, pdfGenerator, center, clock, budget.Rules{
		DeliveryDays: cfg.Rules.BudgetDeliveryDays,
		ExitDays:     cfg.Rules.BudgetExitDays,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // fotos y logos viajan como data URL
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if path := swaggerFile(cfg.Docs.SwaggerFile, log); path != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: path,
			Path:     "docs",
			Title:    "Oficina Manager API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CarFlow:       carflow.NewUseCase(txRunner, repos, nil, stockUC, center.Shared(), clock, log),
		Budgets:       budgetUC,
		Stock:         stockUC,
		Replenishment: inventory.NewReplenishmentUseCase(repos.Stock, repos.Movements, clock),
		Staff:         staff.NewUseCase(txRunner, repos, center, clock, log),
		Payroll:       payroll.NewUseCase(txRunner, repos, pdfGenerator, center, clock, log),
		Expenses:      expenses.NewUseCase(txRunner, repos, center, clock),
		Billing:       billing.NewUseCase(txRunner, repos, invoicexml.NewBuilder(), pdfGenerator, center, clock, log),
		Problems:      problems.NewUseCase(txRunner, repos, center.Shared(), clock, log),
		Profile:       usecase.NewProfileUseCase(txRunner, repos.Profile, center, clock),
		Audit:         audit.NewUseCase(repos.Audit),
		DashboardUC:   appanalytics.NewDashboardUseCase(repos, clock),
		Notifications: center,
		Clock:         clock,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// swaggerFile devuelve el JSON a servir en /docs. Sin el archivo generado por swag
// se vuelca la especificación registrada en el paquete docs; "" desactiva la UI.
func swaggerFile(path string, log zerolog.Logger) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	out := filepath.Join(os.TempDir(), "oficina-manager-swagger.json")
	if err := os.WriteFile(out, []byte(docs.SwaggerInfo.ReadDoc()), 0o644); err != nil {
		log.Warn().Err(err).Msg("swagger desactivado")
		return ""
	}
	return out
}
