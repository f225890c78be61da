package order

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una orden.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, userRepo: userRepo, generator: generator}
}

// GenerateReceiptPDF devuelve los bytes del PDF del comprobante.
// requesterID limita el acceso al dueño de la orden; con cadena vacía (admin)
// no se aplica la restricción.
func (uc *ReceiptUseCase) GenerateReceiptPDF(ctx context.Context, orderID, requesterID string) ([]byte, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if requesterID != "" && o.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	// buyer puede ser nil: la orden sobrevive a la eliminación del usuario y
	// el generador imprime el comprobante sin sus datos.
	buyer, err := uc.userRepo.GetByID(o.UserID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceiptPDF(ctx, o, buyer)
}
