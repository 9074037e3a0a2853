package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/auth"
	"github.com/jhoicas/Sacoleiras-api/internal/application/ledger"
	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ResellerUC *usecase.ResellerUseCase
	LedgerUC   *ledger.UseCase
	StockUC    *stock.UseCase
	ReportUC   *report.UseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	validID := ValidID()

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, ResolveResellerLink(deps.ResellerUC, deps.Logger), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token y, si es sacoleira, vínculo con una sacoleira)
	protected := api.Group("/", authn, RequireLinkedReseller(deps.ResellerUC, deps.Logger))

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Logger)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, validID, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, validID, categoryHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Logger)
	products.Get("/", productHandler.List)
	products.Get("/:id", validID, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, validID, productHandler.Update)
	products.Delete("/:id", adminOnly, validID, productHandler.Delete)

	stockHandler := NewStockHandler(deps.StockUC, deps.ReportUC, deps.Logger)

	resellers := protected.Group("/resellers")
	resellerHandler := NewResellerHandler(deps.ResellerUC, deps.Logger)
	resellers.Get("/", adminOnly, resellerHandler.List)
	resellers.Post("/", adminOnly, resellerHandler.Create)
	resellers.Get("/:id/statement.pdf", validID, stockHandler.StatementPDF)
	resellers.Get("/:id", validID, resellerHandler.GetByID)
	resellers.Put("/:id", adminOnly, validID, resellerHandler.Update)
	resellers.Delete("/:id", adminOnly, validID, resellerHandler.Delete)

	// Lançamentos: solo alta y consulta
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.Logger)
	ledgerGroup.Get("/", ledgerHandler.List)
	ledgerGroup.Post("/", ledgerHandler.Record)
	ledgerGroup.Get("/:id", validID, ledgerHandler.GetByID)

	stockGroup := protected.Group("/stock")
	stockGroup.Get("/", stockHandler.Positions)
	stockGroup.Get("/summary", stockHandler.Summary)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/export.xlsx", stockHandler.ExportXLSX)
}
