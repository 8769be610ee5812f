package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/auth"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/usecase"
	infracache "github.com/jhoicas/kitchen-inventory-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/kitchen-inventory-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/kitchen-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/kitchen-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kitchen-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/kitchen-inventory-api/pkg/config"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
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
		Str("adjustment_lot_policy", cfg.Inventory.AdjustmentLotPolicy).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché del tablero: opcional, sin REDIS_ADDR las consultas van directo a la DB.
	var (
		dashboardCache analytics.DashboardCache
		notifier       inventory.StockNotifier
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		stockCache := infracache.New(client, cfg.Redis.TTL, log.Component("cache"))
		if err := stockCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, tablero sin caché")
		} else {
			dashboardCache = stockCache
			notifier = stockCache
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	receivingRepo := postgres.NewReceivingRepository(pool)
	opnameRepo := postgres.NewStockOpnameRepository(pool)
	transactionRepo := postgres.NewStockTransactionRepository(pool)
	stockQueryRepo := postgres.NewStockQueryRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Inventory.TxTimeout, cfg.Inventory.TxTimeoutLong)

	receivingUC := inventory.NewReceivingUseCase(txRunner, receivingRepo, notifier)
	issueUC := inventory.NewIssueUseCase(txRunner, notifier)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, notifier, cfg.Inventory.AdjustmentLotPolicy)
	opnameUC := inventory.NewOpnameUseCase(txRunner, opnameRepo, notifier)
	stockUC := inventory.NewStockUseCase(materialRepo, transactionRepo)
	materialUC := usecase.NewMaterialUseCase(txRunner, materialRepo, notifier)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := analytics.NewDashboardUseCase(stockQueryRepo, dashboardCache)

	// Reportes: PDF con Maroto, XLSX con excelize
	reportUC := analytics.NewReportUseCase(
		stockQueryRepo, materialRepo,
		infrapdf.NewMarotoReportGenerator(cfg.App.Name),
		infraexcel.NewExcelizeReportGenerator(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Kitchen Inventory API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		MaterialUC:   materialUC,
		ReceivingUC:  receivingUC,
		IssueUC:      issueUC,
		AdjustmentUC: adjustmentUC,
		OpnameUC:     opnameUC,
		StockUC:      stockUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          httpLog,
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
