package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.TestimonialRepository = (*TestimonialRepo)(nil)

// TestimonialRepo implementación del puerto TestimonialRepository sobre PostgreSQL.
type TestimonialRepo struct {
	q Querier
}

func NewTestimonialRepository(q Querier) *TestimonialRepo {
	return &TestimonialRepo{q: q}
}

const testimonialColumns = `id, author_name, content, rating, is_approved, created_at`

func (r *TestimonialRepo) Create(t *entity.Testimonial) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO testimonials (`+testimonialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.AuthorName, t.Content, t.Rating, t.IsApproved, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepo) GetByID(id string) (*entity.Testimonial, error) {
	var t entity.Testimonial
	err := r.q.QueryRow(context.Background(), `
		SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id,
	).Scan(&t.ID, &t.AuthorName, &t.Content, &t.Rating, &t.IsApproved, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return &t, nil
}

func (r *TestimonialRepo) List(approvedOnly bool, limit, offset int) ([]*entity.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if approvedOnly {
		query += ` WHERE is_approved = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Testimonial
	for rows.Next() {
		var t entity.Testimonial
		if err := rows.Scan(&t.ID, &t.AuthorName, &t.Content, &t.Rating, &t.IsApproved, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TestimonialRepo) Update(t *entity.Testimonial) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE testimonials
		SET author_name = $2, content = $3, rating = $4, is_approved = $5
		WHERE id = $1`,
		t.ID, t.AuthorName, t.Content, t.Rating, t.IsApproved,
	)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}
