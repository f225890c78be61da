package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/order"
)

func TestTransition_CaminoCompleto(t *testing.T) {
	camino := []string{
		order.StatusPending, order.StatusPaid, order.StatusConfirmed,
		order.StatusShipped, order.StatusDelivered,
	}
	for i := 0; i < len(camino)-1; i++ {
		next, err := order.Transition(camino[i], camino[i+1])
		assert.NoError(t, err, "%s → %s debe estar permitido", camino[i], camino[i+1])
		assert.Equal(t, camino[i+1], next)
	}
}

func TestTransition_NoSaltaEtapas(t *testing.T) {
	casos := [][2]string{
		{order.StatusPending, order.StatusConfirmed},
		{order.StatusPending, order.StatusShipped},
		{order.StatusPaid, order.StatusShipped},
		{order.StatusPaid, order.StatusDelivered},
		{order.StatusConfirmed, order.StatusDelivered},
	}
	for _, c := range casos {
		got, err := order.Transition(c[0], c[1])
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "%s → %s", c[0], c[1])
		assert.Equal(t, c[0], got, "en fallo se devuelve el estado original")
	}
}

func TestTransition_NoRetrocede(t *testing.T) {
	_, err := order.Transition(order.StatusPaid, order.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = order.Transition(order.StatusDelivered, order.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestTransition_CancelledDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{
		order.StatusPending, order.StatusPaid, order.StatusConfirmed, order.StatusShipped,
	} {
		next, err := order.Transition(from, order.StatusCancelled)
		assert.NoError(t, err, "%s → cancelled debe estar permitido", from)
		assert.Equal(t, order.StatusCancelled, next)
	}
}

func TestTransition_TerminalesNoSalen(t *testing.T) {
	for _, from := range []string{order.StatusDelivered, order.StatusCancelled} {
		for _, to := range []string{
			order.StatusPending, order.StatusPaid, order.StatusConfirmed,
			order.StatusShipped, order.StatusDelivered, order.StatusCancelled,
		} {
			_, err := order.Transition(from, to)
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "%s → %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(order.StatusDelivered))
	assert.True(t, order.IsTerminal(order.StatusCancelled))
	assert.False(t, order.IsTerminal(order.StatusPending))
	assert.False(t, order.IsTerminal(order.StatusShipped))
	assert.False(t, order.IsTerminal("unknown"), "un estado desconocido no es terminal")
}

func TestIsValid(t *testing.T) {
	assert.True(t, order.IsValid(order.StatusPending))
	assert.True(t, order.IsValid(order.StatusCancelled))
	assert.False(t, order.IsValid(""))
	assert.False(t, order.IsValid("PENDING"), "los estados distinguen mayúsculas")
}

func TestRestoresStock(t *testing.T) {
	assert.True(t, order.RestoresStock(order.StatusPending))
	assert.True(t, order.RestoresStock(order.StatusPaid))
	assert.False(t, order.RestoresStock(order.StatusConfirmed))
	assert.False(t, order.RestoresStock(order.StatusShipped))
	assert.False(t, order.RestoresStock(order.StatusDelivered))
	assert.False(t, order.RestoresStock(order.StatusCancelled))
}
