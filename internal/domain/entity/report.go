package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un reporte de horas.
// Aprobado es terminal: no existe camino de des-aprobación.
const (
	ReportStatusPendiente = "Pendiente"
	ReportStatusAprobado  = "Aprobado"
	ReportStatusRechazado = "Rechazado"
)

// FeedbackPorDefecto se guarda cuando el administrador rechaza sin comentario.
const FeedbackPorDefecto = "Sin comentarios"

// Report es un bloque de horas que un consultor registra contra exactamente una
// asignación. AssignmentType se resuelve al crearlo (no lo aporta el cliente) y
// CompanyID/ModuleID se copian de la asignación para que los listados históricos
// no dependan de que la asignación siga viva.
type Report struct {
	ID             string
	UserID         string
	AssignmentID   string
	AssignmentType string // support, project, task
	CompanyID      string
	ModuleID       string
	Descripcion    string
	Horas          decimal.Decimal
	Fecha          time.Time
	Status         string  // Pendiente, Aprobado, Rechazado
	Feedback       *string // motivo de rechazo; se limpia al reenviar
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ResubmittedAt  *time.Time
}
