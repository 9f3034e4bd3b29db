// Package report contiene el motor de ciclo de vida de los reportes de horas:
// Pendiente → Aprobado | Rechazado → (reenvío) → Pendiente.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/identifier"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

const fechaLayout = "2006-01-02"

// Lifecycle valida, crea y transiciona reportes de horas.
type Lifecycle struct {
	reports     repository.ReportRepository
	assignments repository.AssignmentRepository
	ids         identifier.Generator
	now         clock.Clock
	log         *logger.Logger
}

// NewLifecycle construye el motor.
func NewLifecycle(
	reports repository.ReportRepository,
	assignments repository.AssignmentRepository,
	ids identifier.Generator,
	now clock.Clock,
	log *logger.Logger,
) *Lifecycle {
	return &Lifecycle{
		reports:     reports,
		assignments: assignments,
		ids:         ids,
		now:         now,
		log:         log.Component("reportes"),
	}
}

// Submit registra un reporte de horas. Resuelve la asignación referenciada y su
// tipo (el cliente no lo aporta), verifica que el consultor que reporta sea el
// dueño de la asignación y lo deja en estado Pendiente.
func (l *Lifecycle) Submit(ctx context.Context, in dto.SubmitReportRequest) (*dto.ReportResponse, error) {
	if in.Horas.IsNegative() {
		return nil, fmt.Errorf("%w: horas no puede ser negativo", domain.ErrValidation)
	}
	fecha, err := time.Parse(fechaLayout, in.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha debe tener formato %s", domain.ErrValidation, fechaLayout)
	}

	a, err := l.assignments.GetByID(ctx, in.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.IsActive {
		return nil, domain.ErrAssignmentNotFound
	}
	if a.ConsultorID != in.UserID {
		return nil, domain.ErrOwnershipMismatch
	}

	now := l.now()
	r := &entity.Report{
		ID:             l.ids.NewID("rep"),
		UserID:         in.UserID,
		AssignmentID:   a.ID,
		AssignmentType: a.Kind,
		CompanyID:      a.CompanyID,
		ModuleID:       a.ModuleID,
		Descripcion:    in.Descripcion,
		Horas:          in.Horas,
		Fecha:          fecha,
		Status:         entity.ReportStatusPendiente,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := l.reports.Create(ctx, r); err != nil {
		return nil, err
	}

	l.log.Info().Str("id", r.ID).Str("assignment_id", a.ID).Str("tipo", a.Kind).Msg("reporte registrado")
	return toReportResponse(r), nil
}

// Approve transiciona Pendiente → Aprobado. Aprobado es terminal y habilita el
// reporte para los agregados de facturación.
func (l *Lifecycle) Approve(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	r, err := l.getForTransition(ctx, reportID, entity.ReportStatusPendiente)
	if err != nil {
		return nil, err
	}
	r.Status = entity.ReportStatusAprobado
	r.UpdatedAt = l.now()
	if err := l.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	l.log.Info().Str("id", r.ID).Msg("reporte aprobado")
	return toReportResponse(r), nil
}

// Reject transiciona Pendiente → Rechazado y guarda el motivo. Un rechazo sin
// comentario queda con el texto por defecto: el consultor siempre ve una razón.
func (l *Lifecycle) Reject(ctx context.Context, reportID, feedback string) (*dto.ReportResponse, error) {
	r, err := l.getForTransition(ctx, reportID, entity.ReportStatusPendiente)
	if err != nil {
		return nil, err
	}
	if feedback == "" {
		feedback = entity.FeedbackPorDefecto
	}
	r.Status = entity.ReportStatusRechazado
	r.Feedback = &feedback
	r.UpdatedAt = l.now()
	if err := l.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	l.log.Info().Str("id", r.ID).Msg("reporte rechazado")
	return toReportResponse(r), nil
}

// Resubmit transiciona Rechazado → Pendiente: aplica el parche editado, limpia
// el feedback, marca ResubmittedAt y devuelve el reporte a la cola de aprobación.
// Solo el consultor dueño del reporte puede reenviarlo.
func (l *Lifecycle) Resubmit(ctx context.Context, reportID, userID string, patch dto.ResubmitReportRequest) (*dto.ReportResponse, error) {
	r, err := l.getForTransition(ctx, reportID, entity.ReportStatusRechazado)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, domain.ErrOwnershipMismatch
	}

	if patch.Descripcion != nil {
		r.Descripcion = *patch.Descripcion
	}
	if patch.Horas != nil {
		if patch.Horas.IsNegative() {
			return nil, fmt.Errorf("%w: horas no puede ser negativo", domain.ErrValidation)
		}
		r.Horas = *patch.Horas
	}
	if patch.Fecha != nil {
		fecha, err := time.Parse(fechaLayout, *patch.Fecha)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha debe tener formato %s", domain.ErrValidation, fechaLayout)
		}
		r.Fecha = fecha
	}

	now := l.now()
	r.Status = entity.ReportStatusPendiente
	r.Feedback = nil
	r.ResubmittedAt = &now
	r.UpdatedAt = now
	if err := l.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	l.log.Info().Str("id", r.ID).Msg("reporte reenviado a la cola de aprobación")
	return toReportResponse(r), nil
}

// getForTransition carga el reporte y verifica el estado de origen requerido.
// Cualquier otro estado devuelve ErrInvalidTransition y el reporte queda intacto.
func (l *Lifecycle) getForTransition(ctx context.Context, reportID, wantStatus string) (*entity.Report, error) {
	r, err := l.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != wantStatus {
		return nil, fmt.Errorf("%w: se requiere estado %s, el reporte está %s", domain.ErrInvalidTransition, wantStatus, r.Status)
	}
	return r, nil
}

// Pending lista los reportes pendientes de aprobación.
func (l *Lifecycle) Pending(ctx context.Context) (*dto.ReportListResponse, error) {
	list, err := l.reports.ListByStatus(ctx, entity.ReportStatusPendiente)
	if err != nil {
		return nil, err
	}
	return toReportList(list), nil
}

// ApprovedInRange lista reportes aprobados con fecha dentro de [from, to].
func (l *Lifecycle) ApprovedInRange(ctx context.Context, from, to time.Time) (*dto.ReportListResponse, error) {
	list, err := l.reports.ListApprovedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toReportList(list), nil
}

// ByAssignment lista los reportes de una asignación.
func (l *Lifecycle) ByAssignment(ctx context.Context, assignmentID string) (*dto.ReportListResponse, error) {
	list, err := l.reports.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return toReportList(list), nil
}

// ByUser lista los reportes de un consultor.
func (l *Lifecycle) ByUser(ctx context.Context, userID string) (*dto.ReportListResponse, error) {
	list, err := l.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toReportList(list), nil
}

func toReportResponse(r *entity.Report) *dto.ReportResponse {
	if r == nil {
		return nil
	}
	return &dto.ReportResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		AssignmentID:   r.AssignmentID,
		AssignmentType: r.AssignmentType,
		CompanyID:      r.CompanyID,
		ModuleID:       r.ModuleID,
		Descripcion:    r.Descripcion,
		Horas:          r.Horas,
		Fecha:          r.Fecha,
		Status:         r.Status,
		Feedback:       r.Feedback,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		ResubmittedAt:  r.ResubmittedAt,
	}
}

func toReportList(list []*entity.Report) *dto.ReportListResponse {
	items := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReportResponse(r))
	}
	return &dto.ReportListResponse{Items: items}
}
