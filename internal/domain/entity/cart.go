package entity

// Cart es el carrito de un usuario: productID -> cantidad solicitada.
// El orden de inserción es irrelevante. No es un snapshot de precios: el total
// se recalcula contra los precios vigentes; solo la Order congela precios.
type Cart map[string]int

// Set fija la cantidad de un producto. Cantidades < 1 las valida el caso de uso.
func (c Cart) Set(productID string, qty int) {
	c[productID] = qty
}

// Add suma cantidad a una línea existente o la crea.
func (c Cart) Add(productID string, qty int) {
	c[productID] += qty
}

// Remove elimina la línea del producto.
func (c Cart) Remove(productID string) {
	delete(c, productID)
}

// Quantity devuelve la cantidad solicitada (0 si no está en el carrito).
func (c Cart) Quantity(productID string) int {
	return c[productID]
}

// IsEmpty indica si el carrito no tiene líneas.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
