package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// TestimonialHandler maneja testimonios. El listado público solo muestra los
// aprobados; crear, aprobar y borrar es de admin.
type TestimonialHandler struct {
	uc *usecase.TestimonialUseCase
}

func NewTestimonialHandler(uc *usecase.TestimonialUseCase) *TestimonialHandler {
	return &TestimonialHandler{uc: uc}
}

// ListPublic godoc
// @Summary      Listar testimonios aprobados
// @Tags         testimonials
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TestimonialListResponse
// @Router       /api/testimonials [get]
func (h *TestimonialHandler) ListPublic(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(true, limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todos los testimonios (incluye pendientes)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TestimonialListResponse
// @Router       /api/admin/testimonials [get]
func (h *TestimonialHandler) ListAll(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(false, limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear testimonio
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTestimonialRequest  true  "author_name, content, rating"
// @Success      201   {object}  dto.TestimonialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/testimonials [post]
func (h *TestimonialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTestimonialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AuthorName == "" || in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "author_name y content son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar o aprobar un testimonio
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del testimonio"
// @Param        body  body  dto.CreateTestimonialRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TestimonialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/testimonials/{id} [put]
func (h *TestimonialHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateTestimonialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "testimonio no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un testimonio
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del testimonio"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/admin/testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "testimonio eliminado"})
}
