package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) cuando el recurso no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, stock int) error
	Update(product *entity.Product) error
	List(category string, featured *bool, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
