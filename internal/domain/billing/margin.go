package billing

import "github.com/shopspring/decimal"

var (
	cien  = decimal.NewFromInt(100)
	medio = decimal.New(5, -1)
)

// Margen implementa el margen bruto de una asignación (servicio de dominio).
// Margen = CostoCliente - CostoConsultor. Puede ser negativo: un contrato a
// pérdida es un estado real que el administrador debe poder ver, no un error.
func Margen(costoConsultor, costoCliente decimal.Decimal) decimal.Decimal {
	return costoCliente.Sub(costoConsultor)
}

// MargenPorcentaje = Margen / CostoCliente * 100, redondeado a 2 decimales
// half-up. Cuando CostoCliente es 0 no hay base de cálculo y el porcentaje es 0.
func MargenPorcentaje(costoConsultor, costoCliente decimal.Decimal) decimal.Decimal {
	if costoCliente.IsZero() {
		return decimal.Zero
	}
	pct := Margen(costoConsultor, costoCliente).Div(costoCliente).Mul(cien)
	return redondearHalfUp2(pct)
}

// redondearHalfUp2 redondea a 2 decimales con los empates siempre hacia +∞:
// 33.335 → 33.34 y -33.335 → -33.33. Round de shopspring desempata alejándose
// de cero, lo que difiere en los empates negativos.
func redondearHalfUp2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(medio).Floor().Shift(-2)
}
