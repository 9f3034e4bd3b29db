package dto

import "time"

// Entidades de catálogo: Company, Project, Support y Module comparten la misma
// forma de entrada/salida, con un campo de clasificación opcional cada una.

// CreateCatalogRequest entrada para crear una entidad de catálogo.
type CreateCatalogRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	// Status para companies/projects, Category para supports; ignorado en modules.
	Status   string `json:"status"`
	Category string `json:"category"`
}

// UpdateCatalogRequest entrada para actualizar una entidad de catálogo.
type UpdateCatalogRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status"`
	Category    *string `json:"category"`
}

// CatalogResponse salida de una entidad de catálogo.
type CatalogResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogListResponse lista paginada de entidades de catálogo.
type CatalogListResponse struct {
	Items []CatalogResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
