package order

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el checkout
// (verificar-y-descontar stock + snapshot + vaciar carrito) y para la
// cancelación con reposición de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		userRepo repository.UserRepository,
	) error) error
}

// CheckoutSession datos de la sesión creada en el proveedor de pagos.
// Los identificadores son opacos: solo sirven para correlacionar el webhook.
type CheckoutSession struct {
	SessionID       string
	PaymentIntentID string
	URL             string // a donde se redirige al comprador para pagar
}

// PaymentGateway define el puerto de salida hacia el proveedor de pagos.
// La implementación concreta habla con la API REST de Stripe Checkout; para
// tests se inyecta un mock.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, o *entity.Order, successURL, cancelURL string) (*CheckoutSession, error)
}

// ReceiptPDFGenerator genera la representación PDF del comprobante de una orden.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, o *entity.Order, buyer *entity.User) ([]byte, error)
}
