package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consultoria-pro/internal/application/assignment"
	"github.com/tu-usuario/consultoria-pro/internal/application/auth"
	"github.com/tu-usuario/consultoria-pro/internal/application/report"
	"github.com/tu-usuario/consultoria-pro/internal/application/reporting"
	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
	"github.com/tu-usuario/consultoria-pro/internal/application/usecase"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	CompanyUC *usecase.CompanyUseCase
	ProjectUC *usecase.ProjectUseCase
	SupportUC *usecase.SupportUseCase
	ModuleUC  *usecase.ModuleUseCase
	Registry  *assignment.Registry
	Tariffs   *tariff.Engine
	Lifecycle *report.Lifecycle
	Views     *reporting.Views
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). El alta de usuarios es administrativa: vive en /users.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	// Catálogos: lectura para cualquier autenticado, mutación solo admin.
	registerCatalog(protected, "companies", NewCatalogHandler(deps.CompanyUC, "empresa"), adminOnly)
	registerCatalog(protected, "projects", NewCatalogHandler(deps.ProjectUC, "proyecto"), adminOnly)
	registerCatalog(protected, "supports", NewCatalogHandler(deps.SupportUC, "soporte"), adminOnly)
	registerCatalog(protected, "modules", NewCatalogHandler(deps.ModuleUC, "módulo"), adminOnly)

	// Asignaciones: el consultor consulta las suyas; crear y borrar es de admin.
	asignaciones := protected.Group("/asignaciones")
	assignmentHandler := NewAssignmentHandler(deps.Registry)
	asignaciones.Post("/", adminOnly, assignmentHandler.Create)
	asignaciones.Get("/usuario/:userId", RequireSelfOrAdmin("userId"), assignmentHandler.ListByConsultor)
	asignaciones.Get("/empresa/:companyId", adminOnly, assignmentHandler.ListByCompany)
	asignaciones.Get("/:id", assignmentHandler.GetByID)
	asignaciones.Delete("/:id", adminOnly, assignmentHandler.Delete)

	// Tarifario (solo admin: expone márgenes)
	tarifario := protected.Group("/tarifario", adminOnly)
	tariffHandler := NewTariffHandler(deps.Tariffs)
	tarifario.Get("/", tariffHandler.List)
	tarifario.Post("/scan-orphans", tariffHandler.ScanOrphans)

	// Reportes de horas
	reportes := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.Lifecycle, deps.Views)
	reportes.Post("/", reportHandler.Submit)
	reportes.Get("/mios", reportHandler.Mine)
	reportes.Get("/pendientes", adminOnly, reportHandler.Pending)
	reportes.Get("/resumen", adminOnly, reportHandler.Summary)
	reportes.Get("/asignacion/:id", adminOnly, reportHandler.ByAssignment)
	reportes.Post("/:id/aprobar", adminOnly, reportHandler.Approve)
	reportes.Post("/:id/rechazar", adminOnly, reportHandler.Reject)
	reportes.Post("/:id/reenviar", reportHandler.Resubmit)
}

func registerCatalog(parent fiber.Router, path string, h *CatalogHandler, adminOnly fiber.Handler) {
	g := parent.Group("/" + path)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Post("/", adminOnly, h.Create)
	g.Put("/:id", adminOnly, h.Update)
	g.Delete("/:id", adminOnly, h.Deactivate)
}
