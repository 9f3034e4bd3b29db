package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitReportRequest entrada para registrar horas contra una asignación.
// La fecha llega como "2006-01-02"; el handler la parsea antes de llamar al motor.
type SubmitReportRequest struct {
	UserID       string          `json:"-"`
	AssignmentID string          `json:"assignment_id" validate:"required"`
	Descripcion  string          `json:"descripcion" validate:"required,min=1,max=1000"`
	Horas        decimal.Decimal `json:"horas"`
	Fecha        string          `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// RejectReportRequest motivo de rechazo del administrador.
type RejectReportRequest struct {
	Feedback string `json:"feedback" validate:"max=1000"`
}

// ResubmitReportRequest parche editable al reenviar un reporte rechazado.
type ResubmitReportRequest struct {
	Descripcion *string          `json:"descripcion" validate:"omitempty,min=1,max=1000"`
	Horas       *decimal.Decimal `json:"horas"`
	Fecha       *string          `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// ReportResponse salida de un reporte de horas.
type ReportResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	AssignmentID   string          `json:"assignment_id"`
	AssignmentType string          `json:"assignment_type"`
	CompanyID      string          `json:"company_id"`
	ModuleID       string          `json:"module_id"`
	Descripcion    string          `json:"descripcion"`
	Horas          decimal.Decimal `json:"horas"`
	Fecha          time.Time       `json:"fecha"`
	Status         string          `json:"status"`
	Feedback       *string         `json:"feedback,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ResubmittedAt  *time.Time      `json:"resubmitted_at,omitempty"`
}

// ReportListResponse lista de reportes.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
}

// PendingReportItem reporte pendiente enriquecido para la cola de aprobación.
// Orphaned marca reportes cuya asignación ya no existe: se muestran, no se ocultan.
type PendingReportItem struct {
	Report         ReportResponse `json:"report"`
	ConsultorName  string         `json:"consultor_name"`
	CompanyName    string         `json:"company_name"`
	WorkUnitName   string         `json:"work_unit_name"`
	ModuleName     string         `json:"module_name"`
	AssignmentKind string         `json:"assignment_kind"`
	Orphaned       bool           `json:"orphaned"`
}

// PendingQueueResponse cola de aprobación.
type PendingQueueResponse struct {
	Items []PendingReportItem `json:"items"`
}

// Filtros de fecha del resumen de horas aprobadas.
const (
	FilterAll       = "all"
	FilterThisWeek  = "this-week"
	FilterThisMonth = "this-month"
	FilterCustom    = "custom"
)

// SummaryFilter selección de rango para el resumen de facturación.
// From/To solo aplican cuando Filtro es "custom"; ambos inclusivos a nivel de día.
type SummaryFilter struct {
	Filtro string    `json:"filtro"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
}

// AssignmentSummary horas aprobadas agregadas por asignación.
type AssignmentSummary struct {
	AssignmentID   string          `json:"assignment_id"`
	AssignmentKind string          `json:"assignment_kind"`
	ConsultorName  string          `json:"consultor_name"`
	CompanyName    string          `json:"company_name"`
	WorkUnitName   string          `json:"work_unit_name"`
	TotalHoras     decimal.Decimal `json:"total_horas"`
	ReportCount    int             `json:"report_count"`
	Orphaned       bool            `json:"orphaned"`
}

// SummaryResponse resumen de facturación por asignación.
type SummaryResponse struct {
	Filtro string              `json:"filtro"`
	Items  []AssignmentSummary `json:"items"`
}
