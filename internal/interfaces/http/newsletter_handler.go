package http

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/newsletter"
)

// CsrfCookieName cookie del token doble-envío para la suscripción pública.
const CsrfCookieName = "newsletter_csrf"

// NewsletterHandler maneja la suscripción pública al boletín y la gestión
// administrativa de suscriptores.
type NewsletterHandler struct {
	uc *newsletter.NewsletterUseCase
}

func NewNewsletterHandler(uc *newsletter.NewsletterUseCase) *NewsletterHandler {
	return &NewsletterHandler{uc: uc}
}

// Token godoc
// @Summary      Obtener token CSRF para suscribirse
// @Tags         newsletter
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/newsletter/token [get]
func (h *NewsletterHandler) Token(c *fiber.Ctx) error {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el token"})
	}
	token := hex.EncodeToString(buf)

	// Doble envío: el mismo token viaja en cookie y en el cuerpo del POST.
	c.Cookie(&fiber.Cookie{
		Name:     CsrfCookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"csrf_token": token})
}

// Subscribe godoc
// @Summary      Suscribirse al boletín
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubscribeRequest  true  "email, csrf_token"
// @Success      201   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse  "CSRF inválido"
// @Failure      429   {object}  dto.ErrorResponse  "demasiados intentos"
// @Router       /api/newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expected := c.Cookies(CsrfCookieName)
	if _, err := h.uc.Subscribe(c.IP(), in.CsrfToken, expected, in.Email); err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Success: true, Message: newsletter.SubscribedMessage})
}

// List godoc
// @Summary      Listar suscriptores
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SubscriberListResponse
// @Router       /api/admin/newsletter [get]
func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar un suscriptor
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID del suscriptor"
// @Param        active  query  bool    true  "true o false"
// @Success      200     {object}  dto.MessageResponse
// @Router       /api/admin/newsletter/{id}/active [put]
func (h *NewsletterHandler) SetActive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	active := c.QueryBool("active", true)
	if err := h.uc.SetActive(id, active); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "suscriptor actualizado"})
}

// Delete godoc
// @Summary      Eliminar un suscriptor
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del suscriptor"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/admin/newsletter/{id} [delete]
func (h *NewsletterHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "suscriptor eliminado"})
}
