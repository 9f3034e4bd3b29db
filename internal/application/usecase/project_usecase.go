package usecase

import (
	"context"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/identifier"
)

// ProjectUseCase aplica reglas de negocio para proyectos facturables.
type ProjectUseCase struct {
	repo    repository.ProjectRepository
	cascade AssignmentCascader
	ids     identifier.Generator
	now     clock.Clock
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, cascade AssignmentCascader, ids identifier.Generator, now clock.Clock) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, cascade: cascade, ids: ids, now: now}
}

// Create crea un proyecto.
func (uc *ProjectUseCase) Create(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	now := uc.now()
	status := in.Status
	if status == "" {
		status = "planned"
	}
	project := &entity.Project{
		ID:          uc.ids.NewID("p"),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return projectToCatalogResponse(project), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(id string) (*dto.CatalogResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return projectToCatalogResponse(project), nil
}

// Update aplica un parche parcial sobre el proyecto.
func (uc *ProjectUseCase) Update(id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	project.UpdatedAt = uc.now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return projectToCatalogResponse(project), nil
}

// List lista proyectos con paginación.
func (uc *ProjectUseCase) List(limit, offset int) (*dto.CatalogListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *projectToCatalogResponse(p))
	}
	return &dto.CatalogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva el proyecto y en cascada sus asignaciones.
func (uc *ProjectUseCase) Deactivate(ctx context.Context, id string) error {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Deactivate(id); err != nil {
		return err
	}
	return uc.cascade.DeactivateByProject(ctx, id)
}

func projectToCatalogResponse(p *entity.Project) *dto.CatalogResponse {
	if p == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
