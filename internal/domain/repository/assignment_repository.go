package repository

import (
	"context"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia para Assignment.
// Los tres tipos (support/project/task) viven en un solo almacén etiquetado por
// Kind, así el id de asignación es único entre tipos por construcción.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	Delete(ctx context.Context, id string) error
	ListByConsultor(ctx context.Context, consultorID string) ([]*entity.Assignment, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Assignment, error)
	// Deactivate* marcan is_active=false y devuelven los ids afectados,
	// para que el llamador pueda desactivar las entradas de tarifario pareadas.
	DeactivateByConsultor(ctx context.Context, consultorID string) ([]string, error)
	DeactivateByCompany(ctx context.Context, companyID string) ([]string, error)
	DeactivateByProject(ctx context.Context, projectID string) ([]string, error)
}
