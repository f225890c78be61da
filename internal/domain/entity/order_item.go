package entity

import "github.com/shopspring/decimal"

// OrderItem es el snapshot de una línea de compra: nombre y precio unitario
// tal como existían al momento del checkout. La referencia al producto es débil
// (el producto puede cambiar o borrarse sin invalidar el historial) y el
// snapshot jamás se resincroniza con el producto vivo.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   *string // nil si el producto fue eliminado después
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal // Quantity × UnitPrice, congelado al crear
}
