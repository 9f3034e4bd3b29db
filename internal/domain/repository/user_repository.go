package repository

import "github.com/tu-usuario/consultoria-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// La implementación vive en infrastructure.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	// Deactivate marca el usuario como inactivo; nunca hay borrado físico.
	Deactivate(id string) error
}
