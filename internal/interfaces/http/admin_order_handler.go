package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/order"
)

// AdminOrderHandler maneja la superficie administrativa de órdenes: listado
// global y transiciones del ciclo de vida.
type AdminOrderHandler struct {
	uc *order.OrderUseCase
}

func NewAdminOrderHandler(uc *order.OrderUseCase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar todas las órdenes (filtro por estado opcional)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|paid|confirmed|shipped|delivered|cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/admin/orders [get]
func (h *AdminOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar una orden pagada
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/admin/orders/{id}/confirm [post]
func (h *AdminOrderHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Marcar una orden como enviada
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ShipOrderRequest  true  "tracking_number, carrier"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/admin/orders/{id}/ship [post]
func (h *AdminOrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Ship(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Marcar una orden como entregada
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/admin/orders/{id}/deliver [post]
func (h *AdminOrderHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.uc.Deliver(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar cualquier orden no terminal
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/admin/orders/{id}/cancel [post]
func (h *AdminOrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "orden cancelada"})
}
