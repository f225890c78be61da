package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// TestimonialRepository puerto de persistencia para testimonios.
type TestimonialRepository interface {
	Create(testimonial *entity.Testimonial) error
	GetByID(id string) (*entity.Testimonial, error)
	// List devuelve testimonios; con approvedOnly solo los aprobados.
	List(approvedOnly bool, limit, offset int) ([]*entity.Testimonial, error)
	Update(testimonial *entity.Testimonial) error
	Delete(id string) error
}
