package entity

import "time"

// Company representa una empresa cliente a la que se asignan consultores.
// Borrado lógico: desactivar una empresa desactiva en cascada sus asignaciones,
// nunca borra registros (los reportes históricos siguen apuntando a ella).
type Company struct {
	ID          string
	Name        string
	Description string
	Status      string // active, suspended, inactive
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Project representa un proyecto facturable de una empresa cliente.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      string // planned, in-progress, done
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Support representa un ticket/caso de soporte sobre el que se reportan horas.
type Support struct {
	ID          string
	Name        string
	Description string
	Category    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Module representa el módulo funcional (ej. SD, FI, MM) al que pertenece el trabajo.
type Module struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
