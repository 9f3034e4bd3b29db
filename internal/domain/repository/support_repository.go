package repository

import "github.com/tu-usuario/consultoria-pro/internal/domain/entity"

// SupportRepository define el puerto de persistencia para Support.
type SupportRepository interface {
	Create(support *entity.Support) error
	GetByID(id string) (*entity.Support, error)
	Update(support *entity.Support) error
	List(limit, offset int) ([]*entity.Support, error)
	Deactivate(id string) error
}
