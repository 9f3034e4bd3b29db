package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
)

// catalogService es el contrato común de los casos de uso de catálogo
// (empresas, proyectos, soportes y módulos comparten la misma superficie CRUD).
type catalogService interface {
	Create(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error)
	GetByID(id string) (*dto.CatalogResponse, error)
	Update(id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error)
	List(limit, offset int) (*dto.CatalogListResponse, error)
	Deactivate(ctx context.Context, id string) error
}

// CatalogHandler maneja las peticiones HTTP de una entidad de catálogo.
// El mismo handler sirve companies, projects, supports y modules; cambia solo
// el caso de uso inyectado y el nombre para los mensajes de error.
type CatalogHandler struct {
	uc     catalogService
	nombre string
}

// NewCatalogHandler construye el handler para una entidad de catálogo.
func NewCatalogHandler(uc catalogService, nombre string) *CatalogHandler {
	return &CatalogHandler{uc: uc, nombre: nombre}
}

// Create godoc
// @Summary      Crear entidad de catálogo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogRequest  true  "Datos de la entidad"
// @Success      201   {object}  dto.CatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/{catalogo} [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entidad de catálogo por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{catalogo}/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: h.nombre + " no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar entidad de catálogo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateCatalogRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CatalogResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{catalogo}/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCatalogRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entidades de catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CatalogListResponse
// @Router       /api/{catalogo} [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar entidad de catálogo (borrado lógico)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{catalogo}/{id} [delete]
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
