package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es nil cuando el producto no lleva control de inventario (disponibilidad
// ilimitada); cuando no es nil, el checkout lo decrementa de forma atómica.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta actual
	Stock       *int            // nil = sin seguimiento de stock
	Category    string
	ImageName   string // nombre de archivo en el directorio de uploads
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TracksStock indica si el producto participa en el control de inventario.
func (p *Product) TracksStock() bool {
	return p.Stock != nil
}

// Available indica si hay stock suficiente para la cantidad solicitada.
// Un producto sin seguimiento siempre está disponible.
func (p *Product) Available(qty int) bool {
	if !p.TracksStock() {
		return true
	}
	return *p.Stock >= qty
}
