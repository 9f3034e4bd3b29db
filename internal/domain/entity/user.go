package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleConsultor = "consultor"
)

// User representa un usuario del sistema (administrador o consultor).
// El ID lo asigna el administrador al crearlo, no es autogenerado, y los usuarios
// nunca se borran físicamente: se desactivan para preservar el historial de reportes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, consultor
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
