package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
)

// TariffHandler maneja las peticiones HTTP del tarifario (vista administrativa).
type TariffHandler struct {
	engine *tariff.Engine
}

// NewTariffHandler construye el handler.
func NewTariffHandler(engine *tariff.Engine) *TariffHandler {
	return &TariffHandler{engine: engine}
}

// List godoc
// @Summary      Tarifario activo (tarifas y márgenes por asignación)
// @Tags         tarifario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TariffListResponse
// @Router       /api/tarifario [get]
func (h *TariffHandler) List(c *fiber.Ctx) error {
	out, err := h.engine.Tarifario(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ScanOrphans godoc
// @Summary      Detectar entradas de tarifario huérfanas
// @Description  Lista las entradas cuya asignación ya no existe (la sincronía
// @Description  asignación-tarifa es best-effort en la creación).
// @Tags         tarifario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrphanTariffsResponse
// @Router       /api/tarifario/scan-orphans [post]
func (h *TariffHandler) ScanOrphans(c *fiber.Ctx) error {
	out, err := h.engine.ScanForOrphanTariffs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
