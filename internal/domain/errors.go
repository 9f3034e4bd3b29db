package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAssignmentNotFound = errors.New("asignación no encontrada")
	ErrOwnershipMismatch  = errors.New("el reporte no pertenece al dueño de la asignación")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)
