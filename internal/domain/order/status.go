// Package order contiene la máquina de estados de una orden, sin dependencias
// de infraestructura. Los estados avanzan siempre hacia adelante:
//
//	pending → paid → confirmed → shipped → delivered
//
// cancelled es terminal y es alcanzable desde cualquier estado no terminal.
// Ninguna otra transición salta etapas.
package order

import "github.com/jhoicas/Tienda-api/internal/domain"

// Estados válidos de una orden.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// transitions define el grafo de transiciones permitidas.
var transitions = map[string][]string{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// IsValid indica si el string es un estado conocido.
func IsValid(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminal indica si desde el estado no hay transiciones posibles.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0 && IsValid(status)
}

// CanTransition indica si el paso from → to está permitido por el grafo.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition valida el paso from → to y devuelve el nuevo estado.
// Si el paso no está permitido retorna ErrInvalidStateTransition y el
// estado original queda intacto.
func Transition(from, to string) (string, error) {
	if !CanTransition(from, to) {
		return from, domain.ErrInvalidStateTransition
	}
	return to, nil
}

// RestoresStock indica si cancelar desde este estado debe devolver al
// inventario las cantidades que el checkout descontó. Solo aplica antes de la
// confirmación del pedido: pending y paid.
func RestoresStock(from string) bool {
	return from == StatusPending || from == StatusPaid
}
