package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una compra. Total se calcula una sola vez en el checkout
// como suma exacta de los totales de línea y no se vuelve a recalcular.
// El estado solo cambia a través de la máquina de estados (internal/domain/order).
type Order struct {
	ID     string
	UserID string
	Status string
	Total  decimal.Decimal
	Items  []OrderItem

	// Correlación con el proveedor de pagos (identificadores opacos).
	StripeSessionID       string
	StripePaymentIntentID string

	// Envío.
	TrackingNumber string
	Carrier        string
	ShippedAt      *time.Time

	CreatedAt time.Time
}
