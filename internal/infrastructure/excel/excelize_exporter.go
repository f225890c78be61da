package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

var _ usecase.ExcelExporter = (*ExcelizeExporter)(nil)

// ExcelizeExporter implementa usecase.ExcelExporter usando excelize.
type ExcelizeExporter struct{}

func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// OrdersToExcel genera un libro con una fila por orden y sus líneas expandidas
// en una segunda hoja.
func (e *ExcelizeExporter) OrdersToExcel(_ context.Context, orders []*entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Órdenes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headers := []string{"ID", "Usuario", "Estado", "Total", "Guía", "Transportadora", "Enviada", "Creada"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, o := range orders {
		shipped := ""
		if o.ShippedAt != nil {
			shipped = o.ShippedAt.Format("2006-01-02 15:04")
		}
		row := []any{
			o.ID, o.UserID, o.Status, o.Total.StringFixed(2),
			o.TrackingNumber, o.Carrier, shipped,
			o.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	// Hoja de líneas: snapshot de producto por orden.
	const itemsSheet = "Líneas"
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	itemHeaders := []string{"Orden", "Producto", "Cantidad", "Precio Unit.", "Total línea"}
	if err := writeRow(f, itemsSheet, 1, itemHeaders); err != nil {
		return nil, err
	}
	rowNum := 2
	for _, o := range orders {
		for _, it := range o.Items {
			row := []any{
				o.ID, it.ProductName, it.Quantity,
				it.UnitPrice.StringFixed(2), it.LineTotal.StringFixed(2),
			}
			if err := writeRow(f, itemsSheet, rowNum, row); err != nil {
				return nil, err
			}
			rowNum++
		}
	}

	return bytes(f)
}

// SubscribersToExcel genera un libro con una fila por suscriptor.
func (e *ExcelizeExporter) SubscribersToExcel(_ context.Context, subscribers []*entity.Newsletter) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Suscriptores"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headers := []string{"ID", "Email", "Activo", "Suscrito"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, s := range subscribers {
		active := "No"
		if s.IsActive {
			active = "Sí"
		}
		row := []any{s.ID, s.Email, active, s.SubscribedAt.Format("2006-01-02 15:04")}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return bytes(f)
}

func writeRow[T any](f *excelize.File, sheet string, rowNum int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("excel: coordenadas: %w", err)
	}
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &anyValues); err != nil {
		return fmt.Errorf("excel: escribir fila: %w", err)
	}
	return nil
}

func bytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
