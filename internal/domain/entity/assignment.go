package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asignación. Una asignación vincula un consultor con una unidad de
// trabajo facturable (soporte, proyecto o tarea) de una empresa cliente.
const (
	AssignmentKindSupport = "support"
	AssignmentKindProject = "project"
	AssignmentKindTask    = "task"
)

// Prefijos de id por tipo de asignación.
const (
	PrefixSupportAssignment = "sup"
	PrefixProjectAssignment = "proy"
	PrefixTaskAssignment    = "tarea"
)

// Assignment modela los tres tipos como una sola estructura etiquetada por Kind.
// Campos comunes siempre presentes; los específicos de cada tipo se llenan según Kind:
//   - support: SupportID
//   - project: ProjectID
//   - task:    LinkedSupportID (nil = tarea independiente) y Descripcion
//
// Un consultor puede tener varias asignaciones activas simultáneas, del mismo o
// distinto tipo, hacia la misma o distintas empresas.
type Assignment struct {
	ID              string
	Kind            string // support, project, task
	ConsultorID     string
	CompanyID       string
	ModuleID        string
	SupportID       string
	ProjectID       string
	LinkedSupportID *string
	Descripcion     string
	TarifaConsultor decimal.Decimal
	TarifaCliente   decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
}

// WorkUnitID devuelve el id de la unidad de trabajo según el tipo.
// Para tareas independientes (LinkedSupportID nil) devuelve cadena vacía.
func (a *Assignment) WorkUnitID() string {
	switch a.Kind {
	case AssignmentKindSupport:
		return a.SupportID
	case AssignmentKindProject:
		return a.ProjectID
	case AssignmentKindTask:
		if a.LinkedSupportID != nil {
			return *a.LinkedSupportID
		}
	}
	return ""
}

// HasBilling informa si la asignación genera entrada en el tarifario.
// Tarifas ambas en cero = caso de soporte gratuito/interno, sin tarifa.
func (a *Assignment) HasBilling() bool {
	return a.TarifaConsultor.IsPositive() || a.TarifaCliente.IsPositive()
}

// IDPrefix devuelve el prefijo de id que corresponde al tipo dado.
func IDPrefix(kind string) string {
	switch kind {
	case AssignmentKindSupport:
		return PrefixSupportAssignment
	case AssignmentKindProject:
		return PrefixProjectAssignment
	case AssignmentKindTask:
		return PrefixTaskAssignment
	}
	return ""
}
