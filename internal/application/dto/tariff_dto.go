package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TariffResponse fila del tarifario con nombres resueltos y márgenes.
type TariffResponse struct {
	ID               string          `json:"id"`
	AssignmentID     string          `json:"assignment_id"`
	Tipo             string          `json:"tipo"`
	ConsultorID      string          `json:"consultor_id"`
	ConsultorNombre  string          `json:"consultor_nombre"`
	CompanyID        string          `json:"company_id"`
	CompanyNombre    string          `json:"company_nombre"`
	WorkUnitID       string          `json:"work_unit_id,omitempty"`
	WorkUnitNombre   string          `json:"work_unit_nombre,omitempty"`
	ModuleID         string          `json:"module_id"`
	ModuleNombre     string          `json:"module_nombre"`
	CostoConsultor   decimal.Decimal `json:"costo_consultor"`
	CostoCliente     decimal.Decimal `json:"costo_cliente"`
	Margen           decimal.Decimal `json:"margen"`
	MargenPorcentaje decimal.Decimal `json:"margen_porcentaje"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TariffListResponse tarifario completo.
type TariffListResponse struct {
	Items []TariffResponse `json:"items"`
}

// OrphanTariffsResponse resultado del escaneo de consistencia: entradas de
// tarifario cuya asignación ya no existe.
type OrphanTariffsResponse struct {
	Orphans []TariffResponse `json:"orphans"`
	Total   int              `json:"total"`
}
