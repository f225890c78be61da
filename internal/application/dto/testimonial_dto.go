package dto

import "time"

// CreateTestimonialRequest entrada para crear o editar un testimonio.
type CreateTestimonialRequest struct {
	AuthorName string `json:"author_name" validate:"required,min=1,max=100"`
	Content    string `json:"content" validate:"required,min=1"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	IsApproved bool   `json:"is_approved"`
}

// TestimonialResponse salida de un testimonio.
type TestimonialResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// TestimonialListResponse lista paginada de testimonios.
type TestimonialListResponse struct {
	Items []TestimonialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
