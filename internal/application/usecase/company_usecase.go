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

// CompanyUseCase aplica reglas de negocio para empresas cliente.
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	cascade AssignmentCascader
	ids     identifier.Generator
	now     clock.Clock
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, cascade AssignmentCascader, ids identifier.Generator, now clock.Clock) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, cascade: cascade, ids: ids, now: now}
}

// Create crea una empresa cliente con estado inicial activo.
func (uc *CompanyUseCase) Create(in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	now := uc.now()
	status := in.Status
	if status == "" {
		status = "active"
	}
	company := &entity.Company{
		ID:          uc.ids.NewID("emp"),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return companyToCatalogResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CatalogResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return companyToCatalogResponse(company), nil
}

// Update aplica un parche parcial sobre la empresa.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return companyToCatalogResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CatalogListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *companyToCatalogResponse(c))
	}
	return &dto.CatalogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva la empresa (borrado lógico) y en cascada sus asignaciones.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Deactivate(id); err != nil {
		return err
	}
	return uc.cascade.DeactivateByCompany(ctx, id)
}

func companyToCatalogResponse(c *entity.Company) *dto.CatalogResponse {
	if c == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
