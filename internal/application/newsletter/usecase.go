// Package newsletter implementa la puerta de suscripción al boletín:
// cuota por IP, verificación CSRF y deduplicación por email.
package newsletter

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/ratelimit"
)

// SubscribedMessage respuesta de éxito del formulario público.
const SubscribedMessage = "¡Gracias! Ya estás suscrito a nuestra newsletter."

// NewsletterUseCase casos de uso del boletín.
type NewsletterUseCase struct {
	repo    repository.NewsletterRepository
	limiter *ratelimit.Limiter
	now     func() time.Time
}

// NewNewsletterUseCase construye el caso de uso con su limitador por IP.
func NewNewsletterUseCase(repo repository.NewsletterRepository, limiter *ratelimit.Limiter) *NewsletterUseCase {
	return &NewsletterUseCase{repo: repo, limiter: limiter, now: time.Now}
}

// Subscribe aplica las verificaciones en orden fijo y persiste al suscriptor:
//
//	cuota por IP → ErrRateLimited
//	CSRF (doble envío, comparación en tiempo constante) → ErrCsrfInvalid
//	email vacío → ErrEmailRequired
//	email ya suscrito y activo (comparación exacta) → ErrAlreadySubscribed
//
// El suscriptor nace activo: no hay doble opt-in.
func (uc *NewsletterUseCase) Subscribe(ip, csrfToken, csrfExpected, email string) (*dto.SubscriberResponse, error) {
	if !uc.limiter.Allow(ip) {
		return nil, domain.ErrRateLimited
	}
	if csrfExpected == "" || subtle.ConstantTimeCompare([]byte(csrfToken), []byte(csrfExpected)) != 1 {
		return nil, domain.ErrCsrfInvalid
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	existing, err := uc.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsActive {
		return nil, domain.ErrAlreadySubscribed
	}
	if existing != nil {
		// Reactivar un suscriptor dado de baja en vez de duplicar la fila.
		if err := uc.repo.SetActive(existing.ID, true); err != nil {
			return nil, err
		}
		existing.IsActive = true
		return toSubscriberResponse(existing), nil
	}
	sub := &entity.Newsletter{
		ID:           uuid.New().String(),
		Email:        email,
		IsActive:     true,
		SubscribedAt: uc.now(),
	}
	if err := uc.repo.Create(sub); err != nil {
		return nil, err
	}
	return toSubscriberResponse(sub), nil
}

// List lista suscriptores (admin).
func (uc *NewsletterUseCase) List(limit, offset int) (*dto.SubscriberListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubscriberResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubscriberResponse(s))
	}
	return &dto.SubscriberListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// SetActive activa o desactiva un suscriptor (admin).
func (uc *NewsletterUseCase) SetActive(id string, active bool) error {
	return uc.repo.SetActive(id, active)
}

// Delete elimina un suscriptor (admin).
func (uc *NewsletterUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toSubscriberResponse(s *entity.Newsletter) *dto.SubscriberResponse {
	if s == nil {
		return nil
	}
	return &dto.SubscriberResponse{
		ID:           s.ID,
		Email:        s.Email,
		IsActive:     s.IsActive,
		SubscribedAt: s.SubscribedAt,
	}
}
