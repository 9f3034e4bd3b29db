package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TariffEntry es una fila del tarifario: vista derivada y desnormalizada de una
// asignación con tarifas distintas de cero. Existe exactamente una por asignación
// facturable y se elimina junto con ella. Nunca se edita de forma independiente.
type TariffEntry struct {
	ID               string // tarifa_<assignmentID>, derivable sin índice secundario
	AssignmentID     string
	Tipo             string // support, project, task
	ConsultorID      string
	ConsultorNombre  string
	CompanyID        string
	CompanyNombre    string
	WorkUnitID       string // SupportID o ProjectID según Tipo; vacío en tarea independiente
	WorkUnitNombre   string
	ModuleID         string
	ModuleNombre     string
	CostoConsultor   decimal.Decimal
	CostoCliente     decimal.Decimal
	Margen           decimal.Decimal // CostoCliente - CostoConsultor, puede ser negativo
	MargenPorcentaje decimal.Decimal // 2 decimales; 0 cuando CostoCliente es 0
	IsActive         bool
	CreatedAt        time.Time
}

// TariffID deriva el id de la entrada de tarifario a partir del id de asignación.
// La relación es determinista para que el borrado no necesite búsquedas.
func TariffID(assignmentID string) string {
	return "tarifa_" + assignmentID
}
