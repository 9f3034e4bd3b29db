package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consultoria-pro/internal/application/assignment"
	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
)

// AssignmentHandler maneja las peticiones HTTP del registro de asignaciones.
type AssignmentHandler struct {
	registry *assignment.Registry
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(registry *assignment.Registry) *AssignmentHandler {
	return &AssignmentHandler{registry: registry}
}

// Create godoc
// @Summary      Crear asignación (support, project o task)
// @Description  Si la asignación tiene tarifa la entrada de tarifario se deriva
// @Description  al momento; un fallo de la derivación vuelve en el campo warning.
// @Tags         asignaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "Datos de la asignación"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/asignaciones [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.registry.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener asignación por ID
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/asignaciones/{id} [get]
func (h *AssignmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.registry.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar asignación y su entrada de tarifario
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/asignaciones/{id} [delete]
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByConsultor godoc
// @Summary      Listar asignaciones activas de un consultor
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del consultor"
// @Success      200     {object}  dto.AssignmentListResponse
// @Router       /api/asignaciones/usuario/{userId} [get]
func (h *AssignmentHandler) ListByConsultor(c *fiber.Ctx) error {
	out, err := h.registry.ListByConsultor(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Listar asignaciones activas de una empresa cliente
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200        {object}  dto.AssignmentListResponse
// @Router       /api/asignaciones/empresa/{companyId} [get]
func (h *AssignmentHandler) ListByCompany(c *fiber.Ctx) error {
	out, err := h.registry.ListByCompany(c.UserContext(), c.Params("companyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
