package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/order"
)

// OrderHandler maneja checkout y órdenes del comprador. Las transiciones
// administrativas (confirmar, enviar, entregar) viven en las rutas de admin.
type OrderHandler struct {
	uc        *order.OrderUseCase
	receiptUC *order.ReceiptUseCase
}

func NewOrderHandler(uc *order.OrderUseCase, receiptUC *order.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receiptUC: receiptUC}
}

// Checkout godoc
// @Summary      Crear la orden desde el carrito e iniciar el pago
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "success_url, cancel_url"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Failure      422   {object}  dto.ErrorResponse  "carrito vacío"
// @Router       /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SuccessURL == "" || in.CancelURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "success_url y cancel_url son requeridos"})
	}
	out, err := h.uc.BuildFromCart(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RetryPayment godoc
// @Summary      Crear una nueva sesión de pago para una orden pending
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la orden"
// @Param        body  body  dto.CheckoutRequest  true  "success_url, cancel_url"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "la orden ya no está pending"
// @Router       /api/orders/{id}/payment [post]
func (h *OrderHandler) RetryPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SuccessURL == "" || in.CancelURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "success_url y cancel_url son requeridos"})
	}
	out, err := h.uc.RetryPayment(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Listar mis órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListByUser(GetUserID(c), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ver una orden (dueño o admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.fetchOwned(c)
	if out == nil {
		return err // la respuesta de error ya fue escrita
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar una orden propia (repone stock si corresponde)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if out, err := h.fetchOwned(c); out == nil {
		return err
	}
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "orden cancelada"})
}

// Receipt godoc
// @Summary      Descargar el comprobante PDF de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	requesterID := GetUserID(c)
	if HasRole(c, "admin") {
		requesterID = "" // admin puede descargar cualquier comprobante
	}
	pdfBytes, err := h.receiptUC.GenerateReceiptPDF(c.Context(), id, requesterID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// fetchOwned obtiene la orden y verifica que pertenezca al usuario autenticado
// (los admin pueden ver cualquiera). Devuelve la respuesta HTTP de error ya
// escrita cuando falla.
func (h *OrderHandler) fetchOwned(c *fiber.Ctx) (*dto.OrderResponse, error) {
	id := c.Params("id")
	if id == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return nil, handleError(c, err)
	}
	if out == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	if out.UserID != GetUserID(c) && !HasRole(c, "admin") {
		return nil, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la orden no te pertenece"})
	}
	return out, nil
}
