package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest entrada para construir una orden desde el carrito.
// Las URLs son a donde el proveedor de pagos redirige tras el checkout.
type CheckoutRequest struct {
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

// CheckoutResponse orden creada más la URL de pago del proveedor.
type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	PaymentURL string        `json:"payment_url,omitempty"`
}

// ShipOrderRequest entrada para marcar una orden como enviada.
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	Carrier        string `json:"carrier" validate:"required"`
}

// OrderItemResponse snapshot de una línea de la orden.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de una orden con sus ítems.
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	Total          decimal.Decimal     `json:"total"`
	Items          []OrderItemResponse `json:"items"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	Carrier        string              `json:"carrier,omitempty"`
	ShippedAt      *time.Time          `json:"shipped_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PaymentWebhookRequest notificación del proveedor de pagos.
// Outcome es "paid" o "failed"; la correlación es por SessionID.
type PaymentWebhookRequest struct {
	SessionID       string `json:"session_id" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id"`
	Outcome         string `json:"outcome" validate:"required,oneof=paid failed"`
}
