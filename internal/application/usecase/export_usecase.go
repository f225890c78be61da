package usecase

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// exportPageSize tamaño de página al recorrer tablas completas para exportar.
const exportPageSize = 500

// ExcelExporter puerto de salida para generar libros XLSX.
// La implementación concreta usa excelize; para tests se inyecta un mock.
type ExcelExporter interface {
	OrdersToExcel(ctx context.Context, orders []*entity.Order) ([]byte, error)
	SubscribersToExcel(ctx context.Context, subscribers []*entity.Newsletter) ([]byte, error)
}

// ExportUseCase exportaciones administrativas a Excel.
type ExportUseCase struct {
	orderRepo      repository.OrderRepository
	newsletterRepo repository.NewsletterRepository
	exporter       ExcelExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(orderRepo repository.OrderRepository, newsletterRepo repository.NewsletterRepository, exporter ExcelExporter) *ExportUseCase {
	return &ExportUseCase{orderRepo: orderRepo, newsletterRepo: newsletterRepo, exporter: exporter}
}

// ExportOrders genera un XLSX con todas las órdenes, opcionalmente filtradas
// por estado.
func (uc *ExportUseCase) ExportOrders(ctx context.Context, status string) ([]byte, error) {
	var all []*entity.Order
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.orderRepo.List(status, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	return uc.exporter.OrdersToExcel(ctx, all)
}

// ExportSubscribers genera un XLSX con todos los suscriptores del boletín.
func (uc *ExportUseCase) ExportSubscribers(ctx context.Context) ([]byte, error) {
	var all []*entity.Newsletter
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.newsletterRepo.List(exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	return uc.exporter.SubscribersToExcel(ctx, all)
}
