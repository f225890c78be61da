package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler descarga reportes administrativos en XLSX.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Orders godoc
// @Summary      Exportar órdenes a Excel
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200     {file}  file
// @Router       /api/admin/exports/orders [get]
func (h *ExportHandler) Orders(c *fiber.Ctx) error {
	data, err := h.uc.ExportOrders(c.Context(), c.Query("status"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ordenes.xlsx"`)
	return c.Send(data)
}

// Subscribers godoc
// @Summary      Exportar suscriptores del boletín a Excel
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/admin/exports/subscribers [get]
func (h *ExportHandler) Subscribers(c *fiber.Ctx) error {
	data, err := h.uc.ExportSubscribers(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="suscriptores.xlsx"`)
	return c.Send(data)
}
