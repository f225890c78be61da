package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// ListOrderedByName devuelve todas las categorías ordenadas alfabéticamente.
	ListOrderedByName() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
