// Package tariff contiene el motor de derivación del tarifario: la vista
// materializada de tarifas/márgenes que acompaña a cada asignación facturable.
package tariff

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/domain/billing"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

// nombreDesconocido se usa cuando una entidad referenciada no se puede resolver.
// La derivación se degrada, no falla: la contabilidad es secundaria a la asignación.
const nombreDesconocido = "Unknown"

// Names nombres ya resueltos de las entidades que referencia una asignación.
type Names struct {
	Consultor string
	Company   string
	WorkUnit  string
	Module    string
}

// Derive es la función pura asignación → entrada de tarifario.
func Derive(a *entity.Assignment, names Names, createdAt time.Time) *entity.TariffEntry {
	return &entity.TariffEntry{
		ID:               entity.TariffID(a.ID),
		AssignmentID:     a.ID,
		Tipo:             a.Kind,
		ConsultorID:      a.ConsultorID,
		ConsultorNombre:  names.Consultor,
		CompanyID:        a.CompanyID,
		CompanyNombre:    names.Company,
		WorkUnitID:       a.WorkUnitID(),
		WorkUnitNombre:   names.WorkUnit,
		ModuleID:         a.ModuleID,
		ModuleNombre:     names.Module,
		CostoConsultor:   a.TarifaConsultor,
		CostoCliente:     a.TarifaCliente,
		Margen:           billing.Margen(a.TarifaConsultor, a.TarifaCliente),
		MargenPorcentaje: billing.MargenPorcentaje(a.TarifaConsultor, a.TarifaCliente),
		IsActive:         true,
		CreatedAt:        createdAt,
	}
}

// Engine mantiene el tarifario sincronizado con el registro de asignaciones.
type Engine struct {
	tariffs     repository.TariffRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	companies   repository.CompanyRepository
	projects    repository.ProjectRepository
	supports    repository.SupportRepository
	modules     repository.ModuleRepository
	now         clock.Clock
	log         *logger.Logger
}

// NewEngine construye el motor con sus puertos de persistencia y el reloj inyectado.
func NewEngine(
	tariffs repository.TariffRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	projects repository.ProjectRepository,
	supports repository.SupportRepository,
	modules repository.ModuleRepository,
	now clock.Clock,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tariffs:     tariffs,
		assignments: assignments,
		users:       users,
		companies:   companies,
		projects:    projects,
		supports:    supports,
		modules:     modules,
		now:         now,
		log:         log.Component("tarifario"),
	}
}

// UpsertOnCreate deriva y persiste la entrada de tarifario de una asignación
// recién creada. Nunca devuelve error: los problemas se reportan como warning
// (y se registran) para no bloquear la creación de la asignación.
func (e *Engine) UpsertOnCreate(ctx context.Context, a *entity.Assignment) string {
	names, degraded := e.resolveNames(a)
	entry := Derive(a, names, e.now())

	if err := e.tariffs.Create(ctx, entry); err != nil {
		e.log.Warn().Err(err).Str("assignment_id", a.ID).Msg("no se pudo crear la entrada de tarifario")
		return fmt.Sprintf("la asignación se creó pero la entrada de tarifario falló: %v", err)
	}
	if degraded {
		e.log.Warn().Str("assignment_id", a.ID).Msg("tarifa derivada con nombres incompletos")
		return "tarifa derivada con nombres incompletos"
	}
	return ""
}

// RemoveOnDelete elimina la entrada pareada de una asignación. Idempotente:
// una entrada ya ausente no es un error.
func (e *Engine) RemoveOnDelete(ctx context.Context, assignmentID string) error {
	return e.tariffs.Delete(ctx, entity.TariffID(assignmentID))
}

// Tarifario devuelve las filas activas del tarifario para la vista administrativa.
func (e *Engine) Tarifario(ctx context.Context) (*dto.TariffListResponse, error) {
	entries, err := e.tariffs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TariffResponse, 0, len(entries))
	for _, t := range entries {
		items = append(items, *toTariffResponse(t))
	}
	return &dto.TariffListResponse{Items: items}, nil
}

// ScanForOrphanTariffs es la pasada de reparación: la sincronía asignación↔tarifa
// es best-effort, así que este escaneo lista las entradas cuya asignación ya no
// existe para que el administrador las depure.
func (e *Engine) ScanForOrphanTariffs(ctx context.Context) (*dto.OrphanTariffsResponse, error) {
	entries, err := e.tariffs.List(ctx)
	if err != nil {
		return nil, err
	}
	orphans := make([]dto.TariffResponse, 0)
	for _, t := range entries {
		a, err := e.assignments.GetByID(ctx, t.AssignmentID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			orphans = append(orphans, *toTariffResponse(t))
		}
	}
	if len(orphans) > 0 {
		e.log.Warn().Int("total", len(orphans)).Msg("entradas de tarifario huérfanas detectadas")
	}
	return &dto.OrphanTariffsResponse{Orphans: orphans, Total: len(orphans)}, nil
}

// resolveNames busca los nombres de las entidades referenciadas. Cada búsqueda
// fallida se degrada al marcador "Unknown" en lugar de abortar la derivación.
func (e *Engine) resolveNames(a *entity.Assignment) (Names, bool) {
	degraded := false

	lookup := func(name string, err error) string {
		if err != nil || name == "" {
			degraded = true
			return nombreDesconocido
		}
		return name
	}

	names := Names{}
	if u, err := e.users.GetByID(a.ConsultorID); u != nil && err == nil {
		names.Consultor = u.Name
	} else {
		names.Consultor = lookup("", err)
	}
	if c, err := e.companies.GetByID(a.CompanyID); c != nil && err == nil {
		names.Company = c.Name
	} else {
		names.Company = lookup("", err)
	}
	if m, err := e.modules.GetByID(a.ModuleID); m != nil && err == nil {
		names.Module = m.Name
	} else {
		names.Module = lookup("", err)
	}
	names.WorkUnit = e.resolveWorkUnit(a, lookup)

	return names, degraded
}

func (e *Engine) resolveWorkUnit(a *entity.Assignment, lookup func(string, error) string) string {
	switch a.Kind {
	case entity.AssignmentKindSupport:
		if s, err := e.supports.GetByID(a.SupportID); s != nil && err == nil {
			return s.Name
		} else {
			return lookup("", err)
		}
	case entity.AssignmentKindProject:
		if p, err := e.projects.GetByID(a.ProjectID); p != nil && err == nil {
			return p.Name
		} else {
			return lookup("", err)
		}
	case entity.AssignmentKindTask:
		if a.LinkedSupportID == nil {
			// Tarea independiente: la descripción de la tarea es su unidad de trabajo.
			return a.Descripcion
		}
		if s, err := e.supports.GetByID(*a.LinkedSupportID); s != nil && err == nil {
			return s.Name
		} else {
			return lookup("", err)
		}
	}
	return nombreDesconocido
}

func toTariffResponse(t *entity.TariffEntry) *dto.TariffResponse {
	if t == nil {
		return nil
	}
	return &dto.TariffResponse{
		ID:               t.ID,
		AssignmentID:     t.AssignmentID,
		Tipo:             t.Tipo,
		ConsultorID:      t.ConsultorID,
		ConsultorNombre:  t.ConsultorNombre,
		CompanyID:        t.CompanyID,
		CompanyNombre:    t.CompanyNombre,
		WorkUnitID:       t.WorkUnitID,
		WorkUnitNombre:   t.WorkUnitNombre,
		ModuleID:         t.ModuleID,
		ModuleNombre:     t.ModuleNombre,
		CostoConsultor:   t.CostoConsultor,
		CostoCliente:     t.CostoCliente,
		Margen:           t.Margen,
		MargenPorcentaje: t.MargenPorcentaje,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
	}
}
