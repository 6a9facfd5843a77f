package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Gimnasio-api/docs"
	appanalytics "github.com/jhoicas/Gimnasio-api/internal/application/analytics"
	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	appbackup "github.com/jhoicas/Gimnasio-api/internal/application/backup"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/inventory"
	"github.com/jhoicas/Gimnasio-api/internal/application/payroll"
	"github.com/jhoicas/Gimnasio-api/internal/application/pos"
	"github.com/jhoicas/Gimnasio-api/internal/application/reports"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	domainpayroll "github.com/jhoicas/Gimnasio-api/internal/domain/payroll"
	infrabackup "github.com/jhoicas/Gimnasio-api/internal/infrastructure/backup"
	infrapdf "github.com/jhoicas/Gimnasio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/sqlite"
	infraxlsx "github.com/jhoicas/Gimnasio-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Gimnasio-api/internal/interfaces/http"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
	"github.com/jhoicas/Gimnasio-api/pkg/metrics"
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
		Str("db", cfg.DB.Path).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	loc := cfg.App.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()
	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(reg)
	jobMetrics := metrics.NewJobMetrics(reg)

	userRepo := sqlite.NewUserRepository(db)
	planRepo := sqlite.NewPlanRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	paymentRepo := sqlite.NewClientPaymentRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	lotRepo := sqlite.NewLotRepository(db)
	movementRepo := sqlite.NewStockMovementRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	payrollRepo := sqlite.NewPayrollRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	// PDF (recibos y reportes) y XLSX (reportes)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, loc)
	xlsxExporter := infraxlsx.NewExporter(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	planUC := usecase.NewPlanUseCase(planRepo)
	clientUC := usecase.NewClientUseCase(txRunner, clientRepo, paymentRepo, cfg.Membership.ExpiringDays, loc)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, lotRepo, cfg.Inventory.LowStockDefault)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, cfg.Inventory.Markup, loc)
	queryUC := inventory.NewQueryUseCase(productRepo, lotRepo, movementRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(productRepo, lotRepo, reportRepo)

	carts := pos.NewCartService(productRepo, lotRepo)
	saleUC := pos.NewSaleUseCase(txRunner, registerMovementUC, saleRepo, carts, pdfGenerator, loc)

	employeeUC := payroll.NewEmployeeUseCase(employeeRepo)
	payrollUC := payroll.NewPayrollUseCase(txRunner, payrollRepo, domainpayroll.Rates{
		SSO:                   cfg.Payroll.SSORate,
		LPH:                   cfg.Payroll.LPHRate,
		RPE:                   cfg.Payroll.RPERate,
		SeveranceDaysPerMonth: cfg.Payroll.SeveranceDaysPerMonth,
		VacationBaseDays:      cfg.Payroll.VacationBaseDays,
		UtilidadesDays:        cfg.Payroll.UtilidadesDays,
	}, pdfGenerator)

	reportUC := reports.NewUseCase(reportRepo, clientRepo, payrollRepo, queryUC, map[string]reports.Exporter{
		dto.FormatPDF:  pdfGenerator,
		dto.FormatXLSX: xlsxExporter,
	}, cfg.Membership.ExpiringDays, loc)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo, clientRepo, queryUC, cfg.Membership.ExpiringDays, loc)

	backupSvc := appbackup.NewService(
		infrabackup.NewFileStore(cfg.Backup.Dir, cfg.Backup.Keep),
		txRunner, cfg.DB.Path, jobMetrics, log,
	)
	scheduler := appbackup.NewScheduler(backupSvc, cfg.Backup.Interval())
	if scheduler.Enabled() {
		go scheduler.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "Gimnasio API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		PlanUC:           planUC,
		ClientUC:         clientUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		InventoryQuery:   queryUC,
		Replenishment:    replenishmentUC,
		Carts:            carts,
		SaleUC:           saleUC,
		EmployeeUC:       employeeUC,
		PayrollUC:        payrollUC,
		ReportUC:         reportUC,
		DashboardUC:      dashboardUC,
		Backup:           backupSvc,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
