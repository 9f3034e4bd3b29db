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

	"github.com/tu-usuario/consultoria-pro/internal/application/assignment"
	"github.com/tu-usuario/consultoria-pro/internal/application/auth"
	"github.com/tu-usuario/consultoria-pro/internal/application/report"
	"github.com/tu-usuario/consultoria-pro/internal/application/reporting"
	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
	"github.com/tu-usuario/consultoria-pro/internal/application/usecase"
	"github.com/tu-usuario/consultoria-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/consultoria-pro/internal/interfaces/http"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/config"
	"github.com/tu-usuario/consultoria-pro/pkg/identifier"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	supportRepo := postgres.NewSupportRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	tariffRepo := postgres.NewTariffRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ids := identifier.NewUUIDGenerator()
	now := clock.Clock(clock.System)

	tariffEngine := tariff.NewEngine(
		tariffRepo, assignmentRepo,
		userRepo, companyRepo, projectRepo, supportRepo, moduleRepo,
		now, log,
	)
	registry := assignment.NewRegistry(txRunner, assignmentRepo, tariffEngine, ids, now, log)
	lifecycle := report.NewLifecycle(reportRepo, assignmentRepo, ids, now, log)
	views := reporting.NewViews(
		reportRepo, assignmentRepo,
		userRepo, companyRepo, projectRepo, supportRepo, moduleRepo,
		now,
	)

	// El registro de asignaciones es el cascader de las desactivaciones.
	userUC := usecase.NewUserUseCase(userRepo, registry, now)
	companyUC := usecase.NewCompanyUseCase(companyRepo, registry, ids, now)
	projectUC := usecase.NewProjectUseCase(projectRepo, registry, ids, now)
	supportUC := usecase.NewSupportUseCase(supportRepo, ids, now)
	moduleUC := usecase.NewModuleUseCase(moduleRepo, ids, now)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consultoría Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		CompanyUC: companyUC,
		ProjectUC: projectUC,
		SupportUC: supportUC,
		ModuleUC:  moduleUC,
		Registry:  registry,
		Tariffs:   tariffEngine,
		Lifecycle: lifecycle,
		Views:     views,
		JWTSecret: cfg.JWT.Secret,
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
