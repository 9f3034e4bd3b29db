package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/consultoria-pro/internal/domain/billing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Caso de referencia: consultor 100, cliente 150 → margen 50, porcentaje 33.33.
func TestMargen_CasoReferencia(t *testing.T) {
	margen := billing.Margen(d("100"), d("150"))
	pct := billing.MargenPorcentaje(d("100"), d("150"))

	assert.True(t, margen.Equal(d("50")), "margen debe ser 50, fue %s", margen)
	assert.True(t, pct.Equal(d("33.33")), "porcentaje debe ser 33.33, fue %s", pct)
}

// Margen negativo: contrato a pérdida, se calcula sin error.
func TestMargen_Negativo(t *testing.T) {
	margen := billing.Margen(d("200"), d("150"))
	pct := billing.MargenPorcentaje(d("200"), d("150"))

	assert.True(t, margen.Equal(d("-50")))
	assert.True(t, pct.Equal(d("-33.33")), "porcentaje fue %s", pct)
}

// Cliente en cero: no hay base de cálculo, porcentaje 0.
func TestMargenPorcentaje_ClienteCero(t *testing.T) {
	pct := billing.MargenPorcentaje(d("100"), d("0"))
	assert.True(t, pct.IsZero(), "con costo cliente 0 el porcentaje debe ser 0")
}

// Redondeo a 2 decimales: 100/3 de margen sobre 300.
func TestMargenPorcentaje_Redondeo(t *testing.T) {
	// consultor 200, cliente 300 → margen 100 → 33.333...% → 33.33
	pct := billing.MargenPorcentaje(d("200"), d("300"))
	assert.True(t, pct.Equal(d("33.33")), "porcentaje fue %s", pct)

	// consultor 100, cliente 160 → margen 60 → 37.5%
	pct = billing.MargenPorcentaje(d("100"), d("160"))
	assert.True(t, pct.Equal(d("37.5")), "porcentaje fue %s", pct)
}

// Empates half-up: siempre hacia arriba, también con margen negativo.
func TestMargenPorcentaje_EmpateHalfUp(t *testing.T) {
	// consultor 133.33, cliente 200 → margen 66.67 → 33.335% → 33.34
	pct := billing.MargenPorcentaje(d("133.33"), d("200"))
	assert.True(t, pct.Equal(d("33.34")), "empate positivo fue %s", pct)

	// consultor 266.67, cliente 200 → margen -66.67 → -33.335% → -33.33
	pct = billing.MargenPorcentaje(d("266.67"), d("200"))
	assert.True(t, pct.Equal(d("-33.33")), "empate negativo fue %s", pct)
}

// Exactitud: margen siempre es la resta exacta, sin redondeo.
func TestMargen_Exacto(t *testing.T) {
	margen := billing.Margen(d("99.99"), d("150.01"))
	assert.True(t, margen.Equal(d("50.02")), "margen fue %s", margen)
}
