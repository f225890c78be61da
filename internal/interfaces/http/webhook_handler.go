package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/order"
)

// WebhookSecretHeader cabecera con el secreto compartido del webhook de pagos.
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookHandler recibe las notificaciones del proveedor de pagos. No lleva
// JWT: se autentica con un secreto compartido en cabecera.
type WebhookHandler struct {
	uc     *order.OrderUseCase
	secret string
}

func NewWebhookHandler(uc *order.OrderUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{uc: uc, secret: secret}
}

// Payment godoc
// @Summary      Notificación de resultado de pago
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string  true  "Secreto compartido"
// @Param        body              body    dto.PaymentWebhookRequest  true  "session_id, outcome"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/payment [post]
func (h *WebhookHandler) Payment(c *fiber.Ctx) error {
	got := c.Get(WebhookSecretHeader)
	// Comparación en tiempo constante; un secreto vacío nunca autentica.
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "secreto de webhook inválido"})
	}
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_id es requerido"})
	}
	if in.Outcome != "paid" && in.Outcome != "failed" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "outcome debe ser paid o failed"})
	}
	if err := h.uc.HandlePaymentWebhook(c.Context(), in); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "notificación procesada"})
}
