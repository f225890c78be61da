package entity

import "time"

// Testimonial es una reseña de cliente. Solo las aprobadas se muestran en la
// vitrina pública.
type Testimonial struct {
	ID         string
	AuthorName string
	Content    string
	Rating     int // 1..5
	IsApproved bool
	CreatedAt  time.Time
}
