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

	"github.com/jhoicas/Sacoleiras-api/docs"
	"github.com/jhoicas/Sacoleiras-api/internal/application/auth"
	"github.com/jhoicas/Sacoleiras-api/internal/application/ledger"
	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Sacoleiras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/Sacoleiras-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Sacoleiras-api/internal/interfaces/http"
	"github.com/jhoicas/Sacoleiras-api/pkg/config"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

// repos puertos de persistencia según DB_DRIVER.
type repos struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	resellers  repository.ResellerRepository
	users      repository.UserRepository
	ledger     repository.LedgerRepository
	catalogTx  usecase.CatalogTxRunner
	close      func()
}

// @title        Sacoleiras API
// @version      1.0
// @description  Estoque em consignação: catálogo, sacoleiras, lançamentos e relatórios.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openRepos(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer r.close()

	authUC := auth.NewAuthUseCase(r.users, r.resellers, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.AdminSignupCode)
	if cfg.Auth.AdminSignupCode == "" {
		log.Warn().Msg("ADMIN_SIGNUP_CODE vacío: el registro de administradores está deshabilitado")
	}

	categoryUC := usecase.NewCategoryUseCase(r.categories, r.catalogTx)
	productUC := usecase.NewProductUseCase(r.products, r.categories)
	resellerUC := usecase.NewResellerUseCase(r.resellers, r.users)
	ledgerUC := ledger.NewUseCase(r.ledger, r.products, r.resellers)
	stockUC := stock.NewUseCase(r.ledger, r.products)

	// Reportes: extracto PDF (maroto) y planilla de estoque (excelize)
	reportUC := report.NewUseCase(
		stockUC, r.resellers, r.ledger,
		infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewStockExporter(),
		cfg.Report.CompanyName,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	httpLog := log.Component("http")
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs (documento embebido en el binario)
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.JSON(),
		Path:        "docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		ResellerUC: resellerUC,
		LedgerUC:   ledgerUC,
		StockUC:    stockUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     httpLog,
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

// openRepos arma los repositorios sobre PostgreSQL o, con DB_DRIVER=memory, sobre un store volátil.
func openRepos(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*repos, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repos{
			categories: store.Categories(),
			products:   store.Products(),
			resellers:  store.Resellers(),
			users:      store.Users(),
			ledger:     store.Ledger(),
			catalogTx:  store,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("schema aplicado")
	}
	return &repos{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		resellers:  postgres.NewResellerRepository(pool),
		users:      postgres.NewUserRepository(pool),
		ledger:     postgres.NewLedgerRepository(pool),
		catalogTx:  postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
