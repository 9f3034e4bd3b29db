// Package reporting contiene las proyecciones de solo lectura que consume la
// superficie administrativa: cola de pendientes y resumen de horas aprobadas.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
)

// Views agrupa las vistas de agregación. Solo lectura: ninguna muta estado.
type Views struct {
	reports     repository.ReportRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	companies   repository.CompanyRepository
	projects    repository.ProjectRepository
	supports    repository.SupportRepository
	modules     repository.ModuleRepository
	now         clock.Clock
}

// NewViews construye las vistas con sus puertos de lectura.
func NewViews(
	reports repository.ReportRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	projects repository.ProjectRepository,
	supports repository.SupportRepository,
	modules repository.ModuleRepository,
	now clock.Clock,
) *Views {
	return &Views{
		reports:     reports,
		assignments: assignments,
		users:       users,
		companies:   companies,
		projects:    projects,
		supports:    supports,
		modules:     modules,
		now:         now,
	}
}

// PendingQueue une cada reporte Pendiente con los nombres de su asignación para
// la pantalla de aprobación. Un reporte cuya asignación ya no existe se marca
// como huérfano en lugar de ocultarse: el administrador debe poder verlo.
func (v *Views) PendingQueue(ctx context.Context) (*dto.PendingQueueResponse, error) {
	pending, err := v.reports.ListByStatus(ctx, entity.ReportStatusPendiente)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PendingReportItem, 0, len(pending))
	for _, r := range pending {
		item := dto.PendingReportItem{Report: v.toReportResponse(r)}

		a, err := v.assignments.GetByID(ctx, r.AssignmentID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			item.Orphaned = true
			item.AssignmentKind = r.AssignmentType
		} else {
			item.AssignmentKind = a.Kind
			item.WorkUnitName = v.workUnitName(a)
		}
		item.ConsultorName = v.userName(r.UserID)
		item.CompanyName = v.companyName(r.CompanyID)
		item.ModuleName = v.moduleName(r.ModuleID)

		items = append(items, item)
	}
	return &dto.PendingQueueResponse{Items: items}, nil
}

// ApprovedSummaryByAssignment agrupa los reportes Aprobado por asignación y suma
// sus horas dentro del rango del filtro. Los límites son inclusivos a nivel de
// día: inicio 00:00:00.000 y fin 23:59:59.999...
func (v *Views) ApprovedSummaryByAssignment(ctx context.Context, f dto.SummaryFilter) (*dto.SummaryResponse, error) {
	from, to, err := v.rangeFor(f)
	if err != nil {
		return nil, err
	}

	approved, err := v.reports.ListApprovedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Agrupación con orden de primera aparición estable.
	byAssignment := make(map[string]*dto.AssignmentSummary)
	order := make([]string, 0)
	for _, r := range approved {
		s, ok := byAssignment[r.AssignmentID]
		if !ok {
			s = &dto.AssignmentSummary{
				AssignmentID:   r.AssignmentID,
				AssignmentKind: r.AssignmentType,
				TotalHoras:     decimal.Zero,
			}
			a, err := v.assignments.GetByID(ctx, r.AssignmentID)
			if err != nil {
				return nil, err
			}
			if a == nil {
				// La asignación fue borrada después de aprobar: el reporte
				// permanece y la fila se marca, no se descarta.
				s.Orphaned = true
			} else {
				s.AssignmentKind = a.Kind
				s.WorkUnitName = v.workUnitName(a)
			}
			s.ConsultorName = v.userName(r.UserID)
			s.CompanyName = v.companyName(r.CompanyID)
			byAssignment[r.AssignmentID] = s
			order = append(order, r.AssignmentID)
		}
		s.TotalHoras = s.TotalHoras.Add(r.Horas)
		s.ReportCount++
	}

	items := make([]dto.AssignmentSummary, 0, len(order))
	for _, id := range order {
		items = append(items, *byAssignment[id])
	}
	return &dto.SummaryResponse{Filtro: f.Filtro, Items: items}, nil
}

// rangeFor traduce el filtro a un rango [from, to]; ceros significan sin límite.
func (v *Views) rangeFor(f dto.SummaryFilter) (time.Time, time.Time, error) {
	now := v.now()
	switch f.Filtro {
	case "", dto.FilterAll:
		return time.Time{}, time.Time{}, nil
	case dto.FilterThisWeek:
		// Semana domingo–sábado: domingo 00:00:00.000 a sábado 23:59:59.999...
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
		weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
		return weekStart, weekEnd, nil
	case dto.FilterThisMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return monthStart, monthEnd, nil
	case dto.FilterCustom:
		if f.From.IsZero() || f.To.IsZero() {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: el filtro custom requiere from y to", domain.ErrValidation)
		}
		from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, f.From.Location())
		to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 0, 0, 0, 0, f.To.Location()).
			Add(24*time.Hour - time.Nanosecond)
		return from, to, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: filtro desconocido %q", domain.ErrValidation, f.Filtro)
}

func (v *Views) userName(id string) string {
	if u, err := v.users.GetByID(id); u != nil && err == nil {
		return u.Name
	}
	return id
}

func (v *Views) companyName(id string) string {
	if c, err := v.companies.GetByID(id); c != nil && err == nil {
		return c.Name
	}
	return id
}

func (v *Views) moduleName(id string) string {
	if m, err := v.modules.GetByID(id); m != nil && err == nil {
		return m.Name
	}
	return id
}

func (v *Views) workUnitName(a *entity.Assignment) string {
	switch a.Kind {
	case entity.AssignmentKindSupport:
		if s, err := v.supports.GetByID(a.SupportID); s != nil && err == nil {
			return s.Name
		}
	case entity.AssignmentKindProject:
		if p, err := v.projects.GetByID(a.ProjectID); p != nil && err == nil {
			return p.Name
		}
	case entity.AssignmentKindTask:
		if a.LinkedSupportID != nil {
			if s, err := v.supports.GetByID(*a.LinkedSupportID); s != nil && err == nil {
				return s.Name
			}
		}
		return a.Descripcion
	}
	return a.WorkUnitID()
}

func (v *Views) toReportResponse(r *entity.Report) dto.ReportResponse {
	return dto.ReportResponse{
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
