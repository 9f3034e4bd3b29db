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

// SupportUseCase aplica reglas de negocio para tickets/casos de soporte.
// Soportes y módulos no llevan cascada: ninguna asignación se desactiva por
// desactivar el catálogo, solo los reportes nuevos dejan de poder referenciarlos.
type SupportUseCase struct {
	repo repository.SupportRepository
	ids  identifier.Generator
	now  clock.Clock
}

// NewSupportUseCase construye el caso de uso.
func NewSupportUseCase(repo repository.SupportRepository, ids identifier.Generator, now clock.Clock) *SupportUseCase {
	return &SupportUseCase{repo: repo, ids: ids, now: now}
}

// Create crea un soporte.
func (uc *SupportUseCase) Create(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	now := uc.now()
	support := &entity.Support{
		ID:          uc.ids.NewID("s"),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(support); err != nil {
		return nil, err
	}
	return supportToCatalogResponse(support), nil
}

// GetByID obtiene un soporte por ID.
func (uc *SupportUseCase) GetByID(id string) (*dto.CatalogResponse, error) {
	support, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if support == nil {
		return nil, nil
	}
	return supportToCatalogResponse(support), nil
}

// Update aplica un parche parcial sobre el soporte.
func (uc *SupportUseCase) Update(id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	support, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if support == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		support.Name = *in.Name
	}
	if in.Description != nil {
		support.Description = *in.Description
	}
	if in.Category != nil {
		support.Category = *in.Category
	}
	support.UpdatedAt = uc.now()
	if err := uc.repo.Update(support); err != nil {
		return nil, err
	}
	return supportToCatalogResponse(support), nil
}

// List lista soportes con paginación.
func (uc *SupportUseCase) List(limit, offset int) (*dto.CatalogListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *supportToCatalogResponse(s))
	}
	return &dto.CatalogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva el soporte (borrado lógico).
func (uc *SupportUseCase) Deactivate(ctx context.Context, id string) error {
	support, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if support == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func supportToCatalogResponse(s *entity.Support) *dto.CatalogResponse {
	if s == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ModuleUseCase aplica reglas de negocio para módulos funcionales.
type ModuleUseCase struct {
	repo repository.ModuleRepository
	ids  identifier.Generator
	now  clock.Clock
}

// NewModuleUseCase construye el caso de uso.
func NewModuleUseCase(repo repository.ModuleRepository, ids identifier.Generator, now clock.Clock) *ModuleUseCase {
	return &ModuleUseCase{repo: repo, ids: ids, now: now}
}

// Create crea un módulo.
func (uc *ModuleUseCase) Create(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	now := uc.now()
	module := &entity.Module{
		ID:          uc.ids.NewID("m"),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(module); err != nil {
		return nil, err
	}
	return moduleToCatalogResponse(module), nil
}

// GetByID obtiene un módulo por ID.
func (uc *ModuleUseCase) GetByID(id string) (*dto.CatalogResponse, error) {
	module, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, nil
	}
	return moduleToCatalogResponse(module), nil
}

// Update aplica un parche parcial sobre el módulo.
func (uc *ModuleUseCase) Update(id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	module, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		module.Name = *in.Name
	}
	if in.Description != nil {
		module.Description = *in.Description
	}
	module.UpdatedAt = uc.now()
	if err := uc.repo.Update(module); err != nil {
		return nil, err
	}
	return moduleToCatalogResponse(module), nil
}

// List lista módulos con paginación.
func (uc *ModuleUseCase) List(limit, offset int) (*dto.CatalogListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *moduleToCatalogResponse(m))
	}
	return &dto.CatalogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva el módulo (borrado lógico).
func (uc *ModuleUseCase) Deactivate(ctx context.Context, id string) error {
	module, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if module == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func moduleToCatalogResponse(m *entity.Module) *dto.CatalogResponse {
	if m == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
