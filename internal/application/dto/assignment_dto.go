package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest entrada para crear una asignación de cualquier tipo.
// El campo de unidad de trabajo requerido depende de Kind:
//   - support: SupportID
//   - project: ProjectID
//   - task:    LinkedSupportID opcional (nil = tarea independiente) + Descripcion
type CreateAssignmentRequest struct {
	Kind            string          `json:"kind" validate:"required,oneof=support project task"`
	ConsultorID     string          `json:"consultor_id" validate:"required"`
	CompanyID       string          `json:"company_id" validate:"required"`
	ModuleID        string          `json:"module_id" validate:"required"`
	SupportID       string          `json:"support_id"`
	ProjectID       string          `json:"project_id"`
	LinkedSupportID *string         `json:"linked_support_id"`
	Descripcion     string          `json:"descripcion"`
	TarifaConsultor decimal.Decimal `json:"tarifa_consultor"`
	TarifaCliente   decimal.Decimal `json:"tarifa_cliente"`
}

// AssignmentResponse salida de una asignación.
// Warning trae el detalle cuando la derivación de tarifa se degradó; la creación
// de la asignación en sí nunca falla por problemas del tarifario.
type AssignmentResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	ConsultorID     string          `json:"consultor_id"`
	CompanyID       string          `json:"company_id"`
	ModuleID        string          `json:"module_id"`
	SupportID       string          `json:"support_id,omitempty"`
	ProjectID       string          `json:"project_id,omitempty"`
	LinkedSupportID *string         `json:"linked_support_id,omitempty"`
	Descripcion     string          `json:"descripcion,omitempty"`
	TarifaConsultor decimal.Decimal `json:"tarifa_consultor"`
	TarifaCliente   decimal.Decimal `json:"tarifa_cliente"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	Warning         string          `json:"warning,omitempty"`
}

// AssignmentListResponse lista de asignaciones de un consultor o empresa.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
}
