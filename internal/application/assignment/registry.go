// Package assignment contiene el registro de asignaciones: el vínculo entre un
// consultor y una unidad de trabajo facturable, con sus tarifas y su entrada de
// tarifario pareada.
package assignment

import (
	"context"
	"fmt"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/identifier"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

// TxRunner ejecuta un callback con repos de asignaciones y tarifario atados a
// una misma transacción. Lo usa el borrado y las cascadas, donde asignación y
// tarifa deben mutar juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assignments repository.AssignmentRepository,
		tariffs repository.TariffRepository,
	) error) error
}

// Registry aplica las reglas de negocio del registro de asignaciones.
type Registry struct {
	tx          TxRunner
	assignments repository.AssignmentRepository
	tariffs     *tariff.Engine
	ids         identifier.Generator
	now         clock.Clock
	log         *logger.Logger
}

// NewRegistry construye el registro.
func NewRegistry(
	tx TxRunner,
	assignments repository.AssignmentRepository,
	tariffs *tariff.Engine,
	ids identifier.Generator,
	now clock.Clock,
	log *logger.Logger,
) *Registry {
	return &Registry{
		tx:          tx,
		assignments: assignments,
		tariffs:     tariffs,
		ids:         ids,
		now:         now,
		log:         log.Component("asignaciones"),
	}
}

// Create valida y persiste una asignación del tipo indicado. Si alguna tarifa es
// mayor que cero deriva la entrada de tarifario; un fallo de la derivación vuelve
// como Warning en la respuesta, nunca como error de la operación.
func (r *Registry) Create(ctx context.Context, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	a := &entity.Assignment{
		ID:              r.ids.NewID(entity.IDPrefix(in.Kind)),
		Kind:            in.Kind,
		ConsultorID:     in.ConsultorID,
		CompanyID:       in.CompanyID,
		ModuleID:        in.ModuleID,
		TarifaConsultor: in.TarifaConsultor,
		TarifaCliente:   in.TarifaCliente,
		IsActive:        true,
		CreatedAt:       r.now(),
	}
	switch in.Kind {
	case entity.AssignmentKindSupport:
		a.SupportID = in.SupportID
	case entity.AssignmentKindProject:
		a.ProjectID = in.ProjectID
	case entity.AssignmentKindTask:
		a.LinkedSupportID = in.LinkedSupportID
		a.Descripcion = in.Descripcion
	}

	if err := r.assignments.Create(ctx, a); err != nil {
		return nil, err
	}

	// Sincronización best-effort con el tarifario: la asignación ya está
	// persistida y no se revierte si la derivación falla.
	var warning string
	if a.HasBilling() {
		warning = r.tariffs.UpsertOnCreate(ctx, a)
	}

	r.log.Info().Str("id", a.ID).Str("kind", a.Kind).Str("consultor", a.ConsultorID).Msg("asignación creada")

	out := toAssignmentResponse(a)
	out.Warning = warning
	return out, nil
}

// Delete elimina la asignación y su entrada de tarifario en una sola transacción,
// de modo que el par nunca diverge al borrar. Devuelve domain.ErrNotFound si la
// asignación no existe.
func (r *Registry) Delete(ctx context.Context, id string) error {
	err := r.tx.Run(ctx, func(assignments repository.AssignmentRepository, tariffs repository.TariffRepository) error {
		a, err := assignments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if err := assignments.Delete(ctx, id); err != nil {
			return err
		}
		// Idempotente: las asignaciones sin tarifa no tienen entrada que borrar.
		return tariffs.Delete(ctx, entity.TariffID(id))
	})
	if err == nil {
		r.log.Info().Str("id", id).Msg("asignación y tarifa eliminadas")
	}
	return err
}

// GetByID devuelve una asignación o domain.ErrNotFound.
func (r *Registry) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := r.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAssignmentResponse(a), nil
}

// ListByConsultor lista las asignaciones activas de un consultor (pobla los
// desplegables del portal del consultor).
func (r *Registry) ListByConsultor(ctx context.Context, consultorID string) (*dto.AssignmentListResponse, error) {
	list, err := r.assignments.ListByConsultor(ctx, consultorID)
	if err != nil {
		return nil, err
	}
	return toAssignmentList(list), nil
}

// ListByCompany lista las asignaciones activas de una empresa cliente.
func (r *Registry) ListByCompany(ctx context.Context, companyID string) (*dto.AssignmentListResponse, error) {
	list, err := r.assignments.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toAssignmentList(list), nil
}

// DeactivateByUser desactiva en cascada las asignaciones de un usuario y sus
// entradas de tarifario. Se usa al desactivar al usuario; nada se borra.
func (r *Registry) DeactivateByUser(ctx context.Context, userID string) error {
	return r.deactivate(ctx, "user", userID, func(repo repository.AssignmentRepository) ([]string, error) {
		return repo.DeactivateByConsultor(ctx, userID)
	})
}

// DeactivateByCompany desactiva en cascada las asignaciones de una empresa.
func (r *Registry) DeactivateByCompany(ctx context.Context, companyID string) error {
	return r.deactivate(ctx, "company", companyID, func(repo repository.AssignmentRepository) ([]string, error) {
		return repo.DeactivateByCompany(ctx, companyID)
	})
}

// DeactivateByProject desactiva en cascada las asignaciones de un proyecto.
func (r *Registry) DeactivateByProject(ctx context.Context, projectID string) error {
	return r.deactivate(ctx, "project", projectID, func(repo repository.AssignmentRepository) ([]string, error) {
		return repo.DeactivateByProject(ctx, projectID)
	})
}

func (r *Registry) deactivate(ctx context.Context, kind, refID string, fn func(repository.AssignmentRepository) ([]string, error)) error {
	return r.tx.Run(ctx, func(assignments repository.AssignmentRepository, tariffs repository.TariffRepository) error {
		ids, err := fn(assignments)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tariffs.DeactivateByAssignmentIDs(ctx, ids); err != nil {
			return err
		}
		r.log.Info().Str(kind, refID).Int("asignaciones", len(ids)).Msg("cascada de desactivación aplicada")
		return nil
	})
}

func validateCreate(in dto.CreateAssignmentRequest) error {
	if in.ConsultorID == "" {
		return fmt.Errorf("%w: consultor_id es requerido", domain.ErrValidation)
	}
	if in.CompanyID == "" {
		return fmt.Errorf("%w: company_id es requerido", domain.ErrValidation)
	}
	if in.ModuleID == "" {
		return fmt.Errorf("%w: module_id es requerido", domain.ErrValidation)
	}
	if in.TarifaConsultor.IsNegative() || in.TarifaCliente.IsNegative() {
		return fmt.Errorf("%w: las tarifas no pueden ser negativas", domain.ErrValidation)
	}
	switch in.Kind {
	case entity.AssignmentKindSupport:
		if in.SupportID == "" {
			return fmt.Errorf("%w: support_id es requerido", domain.ErrValidation)
		}
	case entity.AssignmentKindProject:
		if in.ProjectID == "" {
			return fmt.Errorf("%w: project_id es requerido", domain.ErrValidation)
		}
	case entity.AssignmentKindTask:
		// El soporte vinculado es opcional (nil = tarea independiente), pero una
		// tarea sin soporte necesita descripción para identificarse.
		if in.LinkedSupportID == nil && in.Descripcion == "" {
			return fmt.Errorf("%w: una tarea independiente requiere descripcion", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: kind debe ser support, project o task", domain.ErrValidation)
	}
	return nil
}

func toAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AssignmentResponse{
		ID:              a.ID,
		Kind:            a.Kind,
		ConsultorID:     a.ConsultorID,
		CompanyID:       a.CompanyID,
		ModuleID:        a.ModuleID,
		SupportID:       a.SupportID,
		ProjectID:       a.ProjectID,
		LinkedSupportID: a.LinkedSupportID,
		Descripcion:     a.Descripcion,
		TarifaConsultor: a.TarifaConsultor,
		TarifaCliente:   a.TarifaCliente,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
	}
}

func toAssignmentList(list []*entity.Assignment) *dto.AssignmentListResponse {
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssignmentResponse(a))
	}
	return &dto.AssignmentListResponse{Items: items}
}
