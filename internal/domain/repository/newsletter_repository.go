package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// NewsletterRepository puerto de persistencia para suscriptores del boletín.
type NewsletterRepository interface {
	Create(subscriber *entity.Newsletter) error
	// GetByEmail busca por email con comparación exacta (tal como se almacenó).
	GetByEmail(email string) (*entity.Newsletter, error)
	List(limit, offset int) ([]*entity.Newsletter, error)
	SetActive(id string, active bool) error
	Delete(id string) error
}
