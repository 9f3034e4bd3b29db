// Package clock define el reloj inyectable de la aplicación.
// Los motores de negocio nunca llaman a time.Now directamente: reciben un Clock,
// de modo que las transiciones de ciclo de vida sean verificables con tiempo fijo.
package clock

import "time"

// Clock devuelve el instante actual.
type Clock func() time.Time

// System es el reloj real del sistema.
func System() time.Time {
	return time.Now()
}

// Fixed devuelve un Clock congelado en t (para pruebas).
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
