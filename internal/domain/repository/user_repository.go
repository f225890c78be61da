package repository

import (
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios (incluye el carrito,
// que vive en la misma fila, y el token de recuperación de contraseña).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail compara el email de forma case-insensitive.
	GetByEmail(email string) (*entity.User, error)
	GetByResetToken(token string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error

	// SaveCart reemplaza el carrito del usuario (persistencia inmediata).
	SaveCart(userID string, cart entity.Cart) error

	// SetResetToken emite un token de recuperación con su expiración.
	SetResetToken(userID, token string, expiresAt time.Time) error
	// ConsumeResetToken cambia el hash y anula token+expiración en un solo
	// UPDATE condicional. Devuelve false si el token ya no está vigente
	// (consumido por otra petición concurrente o inexistente).
	ConsumeResetToken(token, newPasswordHash string) (bool, error)
}
