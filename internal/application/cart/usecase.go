// Package cart implementa el agregado del carrito. Cada mutación persiste de
// inmediato contra la fila del usuario dueño: no hay estado intermedio que
// sobreviva un reinicio del proceso. El carrito no congela precios; Total se
// recalcula siempre contra el catálogo vigente.
package cart

import (
	"sort"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CartUseCase operaciones del carrito de un usuario.
type CartUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(userRepo repository.UserRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{userRepo: userRepo, productRepo: productRepo}
}

// Add suma cantidad a la línea del producto (creándola si no existe) y
// persiste. Falla con ErrInvalidQuantity si qty < 1 y con ErrNotFound si el
// producto no está en el catálogo.
func (uc *CartUseCase) Add(userID, productID string, qty int) (*dto.CartResponse, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.mutate(userID, productID, func(c entity.Cart) {
		c.Add(productID, qty)
	})
}

// SetQuantity fija la cantidad exacta de la línea y persiste.
// Falla con ErrInvalidQuantity si qty < 1.
func (uc *CartUseCase) SetQuantity(userID, productID string, qty int) (*dto.CartResponse, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.mutate(userID, productID, func(c entity.Cart) {
		c.Set(productID, qty)
	})
}

// Remove elimina la línea del producto y persiste. Quitar un producto que no
// está en el carrito no es un error.
func (uc *CartUseCase) Remove(userID, productID string) (*dto.CartResponse, error) {
	user, err := uc.owner(userID)
	if err != nil {
		return nil, err
	}
	user.Cart.Remove(productID)
	if err := uc.userRepo.SaveCart(userID, user.Cart); err != nil {
		return nil, err
	}
	return uc.toResponse(user.Cart)
}

// Clear vacía el carrito y persiste.
func (uc *CartUseCase) Clear(userID string) error {
	if _, err := uc.owner(userID); err != nil {
		return err
	}
	return uc.userRepo.SaveCart(userID, entity.Cart{})
}

// Get devuelve las líneas valoradas a precio vigente y el total recalculado.
// Las líneas cuyo producto ya no existe se omiten de la respuesta.
func (uc *CartUseCase) Get(userID string) (*dto.CartResponse, error) {
	user, err := uc.owner(userID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(user.Cart)
}

// mutate valida el producto, aplica la mutación y persiste el carrito.
func (uc *CartUseCase) mutate(userID, productID string, fn func(entity.Cart)) (*dto.CartResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.owner(userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		user.Cart = entity.Cart{}
	}
	fn(user.Cart)
	if err := uc.userRepo.SaveCart(userID, user.Cart); err != nil {
		return nil, err
	}
	return uc.toResponse(user.Cart)
}

func (uc *CartUseCase) owner(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *CartUseCase) toResponse(c entity.Cart) (*dto.CartResponse, error) {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids) // respuesta estable

	resp := &dto.CartResponse{Lines: []dto.CartLineResponse{}, Total: decimal.Zero}
	for _, id := range ids {
		product, err := uc.productRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue // producto borrado del catálogo después de agregarse
		}
		qty := c[id]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    qty,
			LineTotal:   lineTotal,
		})
		resp.Total = resp.Total.Add(lineTotal)
	}
	return resp, nil
}
