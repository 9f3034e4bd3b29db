// Package identifier genera identificadores únicos con prefijo por tipo de recurso.
// El prefijo conserva la legibilidad de los ids (sup_, proy_, tarea_) y el sufijo
// UUID elimina las colisiones que tendría un id basado en reloj de pared.
package identifier

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator es el puerto de generación de ids que consumen los casos de uso.
type Generator interface {
	NewID(prefix string) string
}

// UUIDGenerator implementación sobre google/uuid.
type UUIDGenerator struct{}

// NewUUIDGenerator construye el generador por defecto de la aplicación.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID devuelve "<prefix>_<uuid>" o solo el uuid si el prefijo es vacío.
func (g *UUIDGenerator) NewID(prefix string) string {
	id := uuid.New().String()
	if prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}
