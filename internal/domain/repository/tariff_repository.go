package repository

import (
	"context"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
)

// TariffRepository define el puerto de persistencia para el tarifario.
type TariffRepository interface {
	Create(ctx context.Context, t *entity.TariffEntry) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.TariffEntry, error)
	// Delete es idempotente: borrar una entrada ausente no es un error.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.TariffEntry, error)
	ListActive(ctx context.Context) ([]*entity.TariffEntry, error)
	DeactivateByAssignmentIDs(ctx context.Context, assignmentIDs []string) error
}
