package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/application/report"
	"github.com/tu-usuario/consultoria-pro/internal/application/reporting"
)

// ReportHandler maneja las peticiones HTTP del ciclo de vida de reportes de
// horas y de las vistas de agregación.
type ReportHandler struct {
	lifecycle *report.Lifecycle
	views     *reporting.Views
}

// NewReportHandler construye el handler.
func NewReportHandler(lifecycle *report.Lifecycle, views *reporting.Views) *ReportHandler {
	return &ReportHandler{lifecycle: lifecycle, views: views}
}

// Submit godoc
// @Summary      Registrar reporte de horas contra una asignación propia
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitReportRequest  true  "Reporte de horas"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reportes [post]
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitReportRequest
	if !parseBody(c, &in) {
		return nil
	}
	// El dueño del reporte es siempre el usuario autenticado, nunca el cuerpo.
	in.UserID = GetUserID(c)
	out, err := h.lifecycle.Submit(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Mine godoc
// @Summary      Listar mis reportes
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportListResponse
// @Router       /api/reportes/mios [get]
func (h *ReportHandler) Mine(c *fiber.Ctx) error {
	out, err := h.lifecycle.ByUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByAssignment godoc
// @Summary      Listar reportes de una asignación
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.ReportListResponse
// @Router       /api/reportes/asignacion/{id} [get]
func (h *ReportHandler) ByAssignment(c *fiber.Ctx) error {
	out, err := h.lifecycle.ByAssignment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar un reporte pendiente
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reportes/{id}/aprobar [post]
func (h *ReportHandler) Approve(c *fiber.Ctx) error {
	out, err := h.lifecycle.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar un reporte pendiente con motivo
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del reporte"
// @Param        body  body  dto.RejectReportRequest  false  "Motivo del rechazo"
// @Success      200   {object}  dto.ReportResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reportes/{id}/rechazar [post]
func (h *ReportHandler) Reject(c *fiber.Ctx) error {
	// El cuerpo es opcional: rechazar sin comentario guarda el texto por defecto.
	var in dto.RejectReportRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	out, err := h.lifecycle.Reject(c.UserContext(), c.Params("id"), in.Feedback)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resubmit godoc
// @Summary      Reenviar un reporte rechazado con correcciones
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del reporte"
// @Param        body  body  dto.ResubmitReportRequest  false  "Campos corregidos"
// @Success      200   {object}  dto.ReportResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reportes/{id}/reenviar [post]
func (h *ReportHandler) Resubmit(c *fiber.Ctx) error {
	var in dto.ResubmitReportRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	// Solo el dueño del reporte puede reenviarlo.
	out, err := h.lifecycle.Resubmit(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Cola de aprobación (pendientes con nombres resueltos)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingQueueResponse
// @Router       /api/reportes/pendientes [get]
func (h *ReportHandler) Pending(c *fiber.Ctx) error {
	out, err := h.views.PendingQueue(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de horas aprobadas agrupadas por asignación
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        filtro  query  string  false  "all | this-week | this-month | custom"  default(all)
// @Param        from    query  string  false  "Inicio (YYYY-MM-DD, solo custom)"
// @Param        to      query  string  false  "Fin (YYYY-MM-DD, solo custom)"
// @Success      200     {object}  dto.SummaryResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reportes/resumen [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	filter := dto.SummaryFilter{Filtro: c.Query("filtro", dto.FilterAll)}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		filter.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		filter.To = to
	}
	out, err := h.views.ApprovedSummaryByAssignment(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
