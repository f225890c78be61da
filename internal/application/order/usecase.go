// Package order implementa el ciclo de vida de una orden: construcción desde
// el carrito, correlación con el proveedor de pagos y transiciones de estado
// con reposición de inventario al cancelar.
package order

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	domorder "github.com/jhoicas/Tienda-api/internal/domain/order"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderUseCase casos de uso del ciclo de vida de órdenes.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	gateway   PaymentGateway
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		gateway:   gateway,
		log:       log,
		now:       time.Now,
	}
}

// BuildFromCart convierte el carrito del usuario en una orden pending y crea
// la sesión de pago. Dentro de una sola transacción:
//
//	(a) bloquea cada producto (SELECT FOR UPDATE, en orden estable de ID para
//	    evitar deadlocks entre checkouts concurrentes),
//	(b) verifica stock y lo descuenta en productos con seguimiento,
//	(c) congela nombre/precio/cantidad en order_items,
//	(d) calcula Total como suma exacta de los totales de línea,
//	(e) vacía el carrito.
//
// Dos checkouts concurrentes sobre la última unidad de un producto no pueden
// ganar ambos: el perdedor recibe ErrInsufficientStock y nada queda descontado.
func (uc *OrderUseCase) BuildFromCart(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	productIDs := make([]string, 0, len(user.Cart))
	for id := range user.Cart {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := uc.now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domorder.StatusPending,
		Total:     decimal.Zero,
		CreatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		userRepo repository.UserRepository,
	) error {
		for _, productID := range productIDs {
			qty := user.Cart.Quantity(productID)
			if qty < 1 {
				return domain.ErrInvalidQuantity
			}
			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if !product.Available(qty) {
				return domain.ErrInsufficientStock
			}
			if product.TracksStock() {
				if err := productRepo.UpdateStock(productID, *product.Stock-qty); err != nil {
					return err
				}
			}
			pid := product.ID
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
			o.Items = append(o.Items, entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     o.ID,
				ProductID:   &pid,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    qty,
				LineTotal:   lineTotal,
			})
			o.Total = o.Total.Add(lineTotal)
		}
		if err := orderRepo.Create(o); err != nil {
			return err
		}
		return userRepo.SaveCart(userID, entity.Cart{})
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CheckoutResponse{Order: *ToOrderResponse(o)}

	// La sesión de pago se crea fuera de la transacción: un fallo aquí deja la
	// orden pending sin sesión y el comprador puede pedir una nueva con
	// RetryPayment; no debe revertir el descuento de stock.
	session, err := uc.gateway.CreateCheckoutSession(ctx, o, in.SuccessURL, in.CancelURL)
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", o.ID).Msg("crear sesión de pago falló")
		return resp, nil
	}
	o.StripeSessionID = session.SessionID
	o.StripePaymentIntentID = session.PaymentIntentID
	if err := uc.orderRepo.Update(o); err != nil {
		return nil, err
	}
	resp.Order = *ToOrderResponse(o)
	resp.PaymentURL = session.URL
	return resp, nil
}

// RetryPayment crea una nueva sesión de pago para una orden pending del
// usuario (checkout cuya sesión falló o expiró). La sesión anterior, si la
// hubo, queda descorrelacionada: el webhook solo reconoce la vigente.
func (uc *OrderUseCase) RetryPayment(ctx context.Context, userID, orderID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if o.Status != domorder.StatusPending {
		return nil, domain.ErrInvalidStateTransition
	}
	session, err := uc.gateway.CreateCheckoutSession(ctx, o, in.SuccessURL, in.CancelURL)
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", o.ID).Msg("reintentar sesión de pago falló")
		return nil, err
	}
	o.StripeSessionID = session.SessionID
	o.StripePaymentIntentID = session.PaymentIntentID
	if err := uc.orderRepo.Update(o); err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{Order: *ToOrderResponse(o), PaymentURL: session.URL}, nil
}

// HandlePaymentWebhook procesa la confirmación asíncrona del proveedor de
// pagos, correlacionada por el identificador de sesión. Outcome "paid" mueve
// pending → paid; "failed" cancela la orden reponiendo stock.
func (uc *OrderUseCase) HandlePaymentWebhook(ctx context.Context, in dto.PaymentWebhookRequest) error {
	o, err := uc.orderRepo.GetByStripeSessionID(in.SessionID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	switch in.Outcome {
	case "paid":
		// Se relee bajo bloqueo de fila: un Cancel concurrente que ya dejó la
		// orden cancelled hace fallar la transición en vez de ser pisado.
		err := uc.txRunner.Run(ctx, func(
			_ repository.ProductRepository,
			orderRepo repository.OrderRepository,
			_ repository.UserRepository,
		) error {
			locked, err := orderRepo.GetForUpdate(o.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			next, err := domorder.Transition(locked.Status, domorder.StatusPaid)
			if err != nil {
				return err
			}
			locked.Status = next
			if in.PaymentIntentID != "" {
				locked.StripePaymentIntentID = in.PaymentIntentID
			}
			return orderRepo.Update(locked)
		})
		if err != nil {
			return err
		}
		uc.log.Info().Str("order_id", o.ID).Msg("pago confirmado")
		return nil
	case "failed":
		return uc.Cancel(ctx, o.ID)
	default:
		return domain.ErrInvalidInput
	}
}

// Confirm mueve paid → confirmed.
func (uc *OrderUseCase) Confirm(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, orderID, domorder.StatusConfirmed, nil)
}

// Ship mueve confirmed → shipped. Exige número de guía y transportador no
// vacíos y fija el timestamp de envío.
func (uc *OrderUseCase) Ship(ctx context.Context, orderID string, in dto.ShipOrderRequest) (*dto.OrderResponse, error) {
	if in.TrackingNumber == "" || in.Carrier == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, orderID, domorder.StatusShipped, func(o *entity.Order) {
		o.TrackingNumber = in.TrackingNumber
		o.Carrier = in.Carrier
		shippedAt := uc.now()
		o.ShippedAt = &shippedAt
	})
}

// Deliver mueve shipped → delivered.
func (uc *OrderUseCase) Deliver(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, orderID, domorder.StatusDelivered, nil)
}

// Cancel mueve la orden a cancelled. Si el estado de origen es pending o paid,
// repone en la misma transacción las cantidades que el checkout descontó
// (inverso exacto del descuento, solo en productos con seguimiento que aún
// existan). Estados terminales fallan con ErrInvalidStateTransition.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.UserRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from := o.Status
		next, err := domorder.Transition(from, domorder.StatusCancelled)
		if err != nil {
			return err
		}
		if domorder.RestoresStock(from) {
			// Mismo orden estable de bloqueo que el checkout.
			items := make([]entity.OrderItem, len(o.Items))
			copy(items, o.Items)
			sort.Slice(items, func(i, j int) bool {
				return deref(items[i].ProductID) < deref(items[j].ProductID)
			})
			for _, item := range items {
				if item.ProductID == nil {
					continue // producto eliminado: no hay a dónde reponer
				}
				product, err := productRepo.GetForUpdate(*item.ProductID)
				if err != nil {
					return err
				}
				if product == nil || !product.TracksStock() {
					continue
				}
				if err := productRepo.UpdateStock(product.ID, *product.Stock+item.Quantity); err != nil {
					return err
				}
			}
		}
		o.Status = next
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		uc.log.Info().Str("order_id", o.ID).Str("from", from).Msg("orden cancelada")
		return nil
	})
}

// GetByID devuelve la orden con sus ítems.
func (uc *OrderUseCase) GetByID(orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	return ToOrderResponse(o), nil
}

// ListByUser lista las órdenes del usuario con paginación.
func (uc *OrderUseCase) ListByUser(userID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// List lista órdenes (admin), opcionalmente filtradas por estado.
func (uc *OrderUseCase) List(status string, limit, offset int) (*dto.OrderListResponse, error) {
	if status != "" && !domorder.IsValid(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// transition aplica un paso de la máquina de estados sin efectos de inventario.
// Bloquea la fila de la orden (SELECT FOR UPDATE) para que la validación y la
// escritura sean atómicas frente a un Cancel concurrente: una orden que llegó a
// cancelled entre lecturas no puede resucitar.
func (uc *OrderUseCase) transition(ctx context.Context, orderID, to string, mutate func(*entity.Order)) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.UserRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		next, err := domorder.Transition(o.Status, to)
		if err != nil {
			return err
		}
		if mutate != nil {
			mutate(o)
		}
		o.Status = next
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		out = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToOrderResponse mapea la entidad a su DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		Status:         o.Status,
		Total:          o.Total,
		Items:          items,
		TrackingNumber: o.TrackingNumber,
		Carrier:        o.Carrier,
		ShippedAt:      o.ShippedAt,
		CreatedAt:      o.CreatedAt,
	}
}

func toListResponse(list []*entity.Order, limit, offset int) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
