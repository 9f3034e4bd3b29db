package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para Report.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Update(ctx context.Context, r *entity.Report) error
	ListByStatus(ctx context.Context, status string) ([]*entity.Report, error)
	// ListApprovedInRange con from/to en cero lista todos los aprobados.
	ListApprovedInRange(ctx context.Context, from, to time.Time) ([]*entity.Report, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]*entity.Report, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Report, error)
}
