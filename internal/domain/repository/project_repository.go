package repository

import "github.com/tu-usuario/consultoria-pro/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	Update(project *entity.Project) error
	List(limit, offset int) ([]*entity.Project, error)
	Deactivate(id string) error
}
