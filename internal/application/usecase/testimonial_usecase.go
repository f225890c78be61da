package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TestimonialUseCase casos de uso CRUD para testimonios.
type TestimonialUseCase struct {
	repo repository.TestimonialRepository
}

// NewTestimonialUseCase construye el caso de uso.
func NewTestimonialUseCase(repo repository.TestimonialRepository) *TestimonialUseCase {
	return &TestimonialUseCase{repo: repo}
}

// Create crea un testimonio (admin decide si nace aprobado).
func (uc *TestimonialUseCase) Create(in dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	if in.AuthorName == "" || in.Content == "" || in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.Testimonial{
		ID:         uuid.New().String(),
		AuthorName: in.AuthorName,
		Content:    in.Content,
		Rating:     in.Rating,
		IsApproved: in.IsApproved,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return toTestimonialResponse(t), nil
}

// Update edita un testimonio existente (incluye aprobar/desaprobar).
func (uc *TestimonialUseCase) Update(id string, in dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	t.AuthorName = in.AuthorName
	t.Content = in.Content
	t.Rating = in.Rating
	t.IsApproved = in.IsApproved
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return toTestimonialResponse(t), nil
}

// List lista testimonios; approvedOnly restringe a los aprobados (vitrina pública).
func (uc *TestimonialUseCase) List(approvedOnly bool, limit, offset int) (*dto.TestimonialListResponse, error) {
	list, err := uc.repo.List(approvedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TestimonialResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTestimonialResponse(t))
	}
	return &dto.TestimonialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un testimonio.
func (uc *TestimonialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toTestimonialResponse(t *entity.Testimonial) *dto.TestimonialResponse {
	if t == nil {
		return nil
	}
	return &dto.TestimonialResponse{
		ID:         t.ID,
		AuthorName: t.AuthorName,
		Content:    t.Content,
		Rating:     t.Rating,
		IsApproved: t.IsApproved,
		CreatedAt:  t.CreatedAt,
	}
}
