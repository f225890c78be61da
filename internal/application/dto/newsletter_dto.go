package dto

import "time"

// SubscribeRequest entrada del formulario de suscripción.
type SubscribeRequest struct {
	Email     string `json:"email" form:"email"`
	CsrfToken string `json:"csrf_token" form:"csrf_token"`
}

// SubscriberResponse salida de un suscriptor (listados de admin).
type SubscriberResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriberListResponse lista paginada de suscriptores.
type SubscriberListResponse struct {
	Items []SubscriberResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
