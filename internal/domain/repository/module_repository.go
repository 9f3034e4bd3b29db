package repository

import "github.com/tu-usuario/consultoria-pro/internal/domain/entity"

// ModuleRepository define el puerto de persistencia para Module.
type ModuleRepository interface {
	Create(module *entity.Module) error
	GetByID(id string) (*entity.Module, error)
	Update(module *entity.Module) error
	List(limit, offset int) ([]*entity.Module, error)
	Deactivate(id string) error
}
