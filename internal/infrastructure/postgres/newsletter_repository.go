package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.NewsletterRepository = (*NewsletterRepo)(nil)

// NewsletterRepo implementación del puerto NewsletterRepository sobre PostgreSQL.
type NewsletterRepo struct {
	q Querier
}

func NewNewsletterRepository(q Querier) *NewsletterRepo {
	return &NewsletterRepo{q: q}
}

func (r *NewsletterRepo) Create(s *entity.Newsletter) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at)
		VALUES ($1, $2, $3, $4)`,
		s.ID, s.Email, s.IsActive, s.SubscribedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// GetByEmail compara el email exactamente como se almacenó.
func (r *NewsletterRepo) GetByEmail(email string) (*entity.Newsletter, error) {
	var s entity.Newsletter
	err := r.q.QueryRow(context.Background(), `
		SELECT id, email, is_active, subscribed_at
		FROM newsletter_subscribers WHERE email = $1`, email,
	).Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	return &s, nil
}

func (r *NewsletterRepo) List(limit, offset int) ([]*entity.Newsletter, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, email, is_active, subscribed_at
		FROM newsletter_subscribers ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Newsletter
	for rows.Next() {
		var s entity.Newsletter
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *NewsletterRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE newsletter_subscribers SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("update subscriber: %w", err)
	}
	return nil
}

func (r *NewsletterRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM newsletter_subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}
