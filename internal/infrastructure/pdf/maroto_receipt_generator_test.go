package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	domorder "github.com/jhoicas/Tienda-api/internal/domain/order"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	pid := "p1"
	return &entity.Order{
		ID:     "ord-0001",
		UserID: "u1",
		Status: domorder.StatusPaid,
		Total:  decimal.RequireFromString("21.40"),
		Items: []entity.OrderItem{
			{
				ID: "it1", OrderID: "ord-0001", ProductID: &pid,
				ProductName: "Camiseta", UnitPrice: decimal.RequireFromString("5.35"),
				Quantity: 4, LineTotal: decimal.RequireFromString("21.40"),
			},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateReceiptPDF_ConComprador(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("Tienda Test")
	buyer := &entity.User{
		ID: "u1", Email: "ana@test.local",
		FirstName: "Ana", LastName: "García", Address: "Calle 1 #2-3",
	}

	out, err := g.GenerateReceiptPDF(context.Background(), sampleOrder(), buyer)
	require.NoError(t, err)
	assert.NotEmpty(t, out, "el comprobante debe tener contenido")
}

// El comprador puede haber sido eliminado después de la compra: la orden no
// tiene FK al usuario y el admin sigue pudiendo descargar el comprobante.
func TestGenerateReceiptPDF_CompradorEliminado(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("Tienda Test")

	out, err := g.GenerateReceiptPDF(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out, "sin comprador el comprobante se genera igual")
}
