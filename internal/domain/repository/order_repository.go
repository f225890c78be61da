package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes y sus ítems
// (relación padre/hijos por OrderID).
type OrderRepository interface {
	// Create inserta la orden y todos sus ítems.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus ítems, o (nil, nil) si no existe.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate obtiene la orden (con ítems) bloqueando la fila padre.
	GetForUpdate(id string) (*entity.Order, error)
	// GetByStripeSessionID correlaciona el webhook de pago con la orden.
	GetByStripeSessionID(sessionID string) (*entity.Order, error)
	// Update persiste estado, datos de envío e identificadores de pago.
	// Total e ítems nunca se reescriben después de Create.
	Update(order *entity.Order) error
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
}
