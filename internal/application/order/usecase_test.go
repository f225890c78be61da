package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	apporder "github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	domorder "github.com/jhoicas/Tienda-api/internal/domain/order"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = &stock
	return nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(string, *bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	// onGetForUpdate emula una escritura concurrente que ganó el bloqueo de
	// fila y ya hizo commit antes de que este lector lo tome.
	onGetForUpdate func(*entity.Order)
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	o := r.orders[id]
	if o != nil && r.onGetForUpdate != nil {
		r.onGetForUpdate(o)
	}
	return o, nil
}
func (r *fakeOrderRepo) GetByStripeSessionID(sessionID string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) Update(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) ListByUser(userID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) List(status string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error                  { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)      { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) GetByResetToken(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                  { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error)        { return nil, nil }
func (r *fakeUserRepo) Delete(id string) error                       { delete(r.users, id); return nil }
func (r *fakeUserRepo) SaveCart(userID string, cart entity.Cart) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Cart = cart
	return nil
}
func (r *fakeUserRepo) SetResetToken(string, string, time.Time) error { return nil }
func (r *fakeUserRepo) ConsumeResetToken(string, string) (bool, error) {
	return false, nil
}

// fakeTxRunner ejecuta la función directamente contra los mismos repos.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	userRepo    *fakeUserRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.OrderRepository,
	repository.UserRepository,
) error) error {
	return fn(t.productRepo, t.orderRepo, t.userRepo)
}

type fakeGateway struct {
	session *apporder.CheckoutSession
	err     error
	calls   int
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, _ *entity.Order, _, _ string) (*apporder.CheckoutSession, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	products *fakeProductRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	gateway  *fakeGateway
	uc       *apporder.OrderUseCase
}

func intPtr(n int) *int { return &n }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	orders := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	gateway := &fakeGateway{session: &apporder.CheckoutSession{
		SessionID:       "cs_test_1",
		PaymentIntentID: "pi_test_1",
		URL:             "https://pay.example/cs_test_1",
	}}
	tx := &fakeTxRunner{productRepo: products, orderRepo: orders, userRepo: users}
	uc := apporder.NewOrderUseCase(tx, orders, users, gateway, logger.Nop())
	return &fixture{products: products, orders: orders, users: users, gateway: gateway, uc: uc}
}

func (f *fixture) addUser(id string, cart entity.Cart) {
	f.users.users[id] = &entity.User{ID: id, Email: id + "@test.local", IsActive: true, Cart: cart}
}

func (f *fixture) addProduct(id, name string, price string, stock *int) {
	f.products.products[id] = &entity.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func (f *fixture) singleOrder(t *testing.T) *entity.Order {
	t.Helper()
	require.Len(t, f.orders.orders, 1)
	for _, o := range f.orders.orders {
		return o
	}
	return nil
}

var checkoutReq = dto.CheckoutRequest{
	SuccessURL: "https://tienda.local/ok",
	CancelURL:  "https://tienda.local/ko",
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildFromCart_DescuentaStockYCongelaPrecios(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Camiseta", "5.00", intPtr(10))
	f.addUser("u1", entity.Cart{"p1": 2})

	out, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	require.NoError(t, err)

	assert.Equal(t, domorder.StatusPending, out.Order.Status)
	assert.True(t, out.Order.Total.Equal(decimal.RequireFromString("10.00")),
		"total = 2 × 5.00, congelado al checkout")
	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, "Camiseta", out.Order.Items[0].ProductName)
	assert.Equal(t, 2, out.Order.Items[0].Quantity)

	assert.Equal(t, 8, *f.products.products["p1"].Stock, "el stock queda descontado")
	assert.True(t, f.users.users["u1"].Cart.IsEmpty(), "el carrito queda vacío")
	assert.Equal(t, "https://pay.example/cs_test_1", out.PaymentURL)

	stored := f.singleOrder(t)
	assert.Equal(t, "cs_test_1", stored.StripeSessionID)
}

func TestBuildFromCart_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Camiseta", "5.00", intPtr(10))
	f.addUser("u1", entity.Cart{"p1": 11})

	_, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, *f.products.products["p1"].Stock, "el stock no se toca")
	assert.Empty(t, f.orders.orders, "no se crea ninguna orden")
	assert.False(t, f.users.users["u1"].Cart.IsEmpty(), "el carrito se conserva")
	assert.Zero(t, f.gateway.calls, "no se contacta al proveedor de pagos")
}

func TestBuildFromCart_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	f.addUser("u1", entity.Cart{})

	_, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestBuildFromCart_ProductoSinSeguimientoSiempreDisponible(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Descarga digital", "3.50", nil)
	f.addUser("u1", entity.Cart{"p1": 100})

	out, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	require.NoError(t, err)

	assert.True(t, out.Order.Total.Equal(decimal.RequireFromString("350.00")))
	assert.Nil(t, f.products.products["p1"].Stock, "sigue sin seguimiento")
}

func TestBuildFromCart_FalloDePagoDejaOrdenPendingSinURL(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("stripe caído")
	f.addProduct("p1", "Camiseta", "5.00", intPtr(10))
	f.addUser("u1", entity.Cart{"p1": 1})

	out, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	require.NoError(t, err, "el fallo del proveedor no revierte la orden")

	assert.Empty(t, out.PaymentURL)
	assert.Equal(t, domorder.StatusPending, out.Order.Status)
	assert.Equal(t, 9, *f.products.products["p1"].Stock, "el descuento de stock se mantiene")
}

func TestBuildFromCart_TotalMultilinea(t *testing.T) {
	f := newFixture(t)
	f.addProduct("a", "Taza", "4.25", intPtr(5))
	f.addProduct("b", "Poster", "12.90", intPtr(3))
	f.addUser("u1", entity.Cart{"a": 2, "b": 1})

	out, err := f.uc.BuildFromCart(context.Background(), "u1", checkoutReq)
	require.NoError(t, err)

	// 2×4.25 + 1×12.90 = 21.40, suma exacta de los totales de línea.
	assert.True(t, out.Order.Total.Equal(decimal.RequireFromString("21.40")))
	assert.Len(t, out.Order.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestRetryPayment_CreaSesionParaOrdenPendingSinSesion(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
	}

	out, err := f.uc.RetryPayment(context.Background(), "u1", "o1", checkoutReq)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/cs_test_1", out.PaymentURL)
	assert.Equal(t, "cs_test_1", f.orders.orders["o1"].StripeSessionID,
		"la nueva sesión queda correlacionada con la orden")
}

func TestRetryPayment_ReemplazaSesionAnterior(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
		StripeSessionID: "cs_vieja",
	}

	_, err := f.uc.RetryPayment(context.Background(), "u1", "o1", checkoutReq)
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", f.orders.orders["o1"].StripeSessionID)

	// El webhook de la sesión vieja ya no correlaciona con ninguna orden.
	err = f.uc.HandlePaymentWebhook(context.Background(), dto.PaymentWebhookRequest{
		SessionID: "cs_vieja", Outcome: "paid",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRetryPayment_SoloElDuenoPuedeReintentar(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
	}

	_, err := f.uc.RetryPayment(context.Background(), "u2", "o1", checkoutReq)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, f.gateway.calls)
}

func TestRetryPayment_SoloOrdenesPending(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPaid,
		StripeSessionID: "cs_1",
	}

	_, err := f.uc.RetryPayment(context.Background(), "u1", "o1", checkoutReq)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, "cs_1", f.orders.orders["o1"].StripeSessionID, "la sesión pagada no se pisa")
}

func TestRetryPayment_OrdenInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RetryPayment(context.Background(), "u1", "nope", checkoutReq)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRetryPayment_FalloDelProveedorSePropaga(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("stripe caído")
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
	}

	_, err := f.uc.RetryPayment(context.Background(), "u1", "o1", checkoutReq)
	require.Error(t, err, "el reintento explícito sí reporta el fallo")
	assert.Empty(t, f.orders.orders["o1"].StripeSessionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestHandlePaymentWebhook_PaidMuevePendingAPaid(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
		StripeSessionID: "cs_1",
	}

	err := f.uc.HandlePaymentWebhook(context.Background(), dto.PaymentWebhookRequest{
		SessionID: "cs_1", PaymentIntentID: "pi_9", Outcome: "paid",
	})
	require.NoError(t, err)

	assert.Equal(t, domorder.StatusPaid, f.orders.orders["o1"].Status)
	assert.Equal(t, "pi_9", f.orders.orders["o1"].StripePaymentIntentID)
}

func TestHandlePaymentWebhook_SesionDesconocida(t *testing.T) {
	f := newFixture(t)
	err := f.uc.HandlePaymentWebhook(context.Background(), dto.PaymentWebhookRequest{
		SessionID: "cs_nope", Outcome: "paid",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandlePaymentWebhook_FailedCancelaYReponeStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Camiseta", "5.00", intPtr(8))
	pid := "p1"
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
		StripeSessionID: "cs_1",
		Items: []entity.OrderItem{
			{ID: "i1", OrderID: "o1", ProductID: &pid, ProductName: "Camiseta", Quantity: 2},
		},
	}

	err := f.uc.HandlePaymentWebhook(context.Background(), dto.PaymentWebhookRequest{
		SessionID: "cs_1", Outcome: "failed",
	})
	require.NoError(t, err)

	assert.Equal(t, domorder.StatusCancelled, f.orders.orders["o1"].Status)
	assert.Equal(t, 10, *f.products.products["p1"].Stock, "el stock vuelve a su valor")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones administrativas
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmShipDeliver_CaminoFeliz(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusPaid}

	out, err := f.uc.Confirm(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusConfirmed, out.Status)

	out, err = f.uc.Ship(context.Background(), "o1", dto.ShipOrderRequest{
		TrackingNumber: "TRK-1", Carrier: "correos",
	})
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusShipped, out.Status)
	assert.Equal(t, "TRK-1", out.TrackingNumber)
	require.NotNil(t, out.ShippedAt)

	out, err = f.uc.Deliver(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domorder.StatusDelivered, out.Status)
}

func TestShip_ExigeGuiaYTransportadora(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusConfirmed}

	_, err := f.uc.Ship(context.Background(), "o1", dto.ShipOrderRequest{TrackingNumber: "TRK-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Ship(context.Background(), "o1", dto.ShipOrderRequest{Carrier: "correos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_DesdePendingEsInvalido(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusPending}

	_, err := f.uc.Confirm(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domorder.StatusPending, f.orders.orders["o1"].Status, "el estado no cambia")
}

// Un Cancel concurrente puede hacer commit entre la lectura del estado y la
// escritura. La transición relee bajo bloqueo de fila, así que debe ver
// cancelled y fallar en lugar de resucitar la orden.
func TestShip_CancelConcurrenteNoEsPisado(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusConfirmed}
	f.orders.onGetForUpdate = func(o *entity.Order) {
		o.Status = domorder.StatusCancelled
	}

	_, err := f.uc.Ship(context.Background(), "o1", dto.ShipOrderRequest{
		TrackingNumber: "TRK-1", Carrier: "correos",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domorder.StatusCancelled, f.orders.orders["o1"].Status,
		"la orden cancelada no resucita")
}

func TestHandlePaymentWebhook_CancelConcurrenteNoEsPisado(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", UserID: "u1", Status: domorder.StatusPending,
		StripeSessionID: "cs_1",
	}
	f.orders.onGetForUpdate = func(o *entity.Order) {
		o.Status = domorder.StatusCancelled
	}

	err := f.uc.HandlePaymentWebhook(context.Background(), dto.PaymentWebhookRequest{
		SessionID: "cs_1", PaymentIntentID: "pi_9", Outcome: "paid",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domorder.StatusCancelled, f.orders.orders["o1"].Status)
	assert.Empty(t, f.orders.orders["o1"].StripePaymentIntentID, "nada del webhook se persiste")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_DesdePendingReponeStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Camiseta", "5.00", intPtr(8))
	pid := "p1"
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", Status: domorder.StatusPending,
		Items: []entity.OrderItem{{ID: "i1", ProductID: &pid, Quantity: 2}},
	}

	require.NoError(t, f.uc.Cancel(context.Background(), "o1"))

	assert.Equal(t, domorder.StatusCancelled, f.orders.orders["o1"].Status)
	assert.Equal(t, 10, *f.products.products["p1"].Stock)
}

func TestCancel_DesdeConfirmedNoReponeStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", "Camiseta", "5.00", intPtr(8))
	pid := "p1"
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", Status: domorder.StatusConfirmed,
		Items: []entity.OrderItem{{ID: "i1", ProductID: &pid, Quantity: 2}},
	}

	require.NoError(t, f.uc.Cancel(context.Background(), "o1"))

	assert.Equal(t, domorder.StatusCancelled, f.orders.orders["o1"].Status)
	assert.Equal(t, 8, *f.products.products["p1"].Stock,
		"pasada la confirmación la mercancía ya salió: no se repone")
}

func TestCancel_ProductoBorradoSeOmiteAlReponer(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p2", "Taza", "4.00", intPtr(3))
	pid2 := "p2"
	f.orders.orders["o1"] = &entity.Order{
		ID: "o1", Status: domorder.StatusPaid,
		Items: []entity.OrderItem{
			{ID: "i1", ProductID: nil, ProductName: "Borrado", Quantity: 5},
			{ID: "i2", ProductID: &pid2, ProductName: "Taza", Quantity: 1},
		},
	}

	require.NoError(t, f.uc.Cancel(context.Background(), "o1"))
	assert.Equal(t, 4, *f.products.products["p2"].Stock, "solo se repone lo que aún existe")
}

func TestCancel_DesdeEstadoTerminalFalla(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusDelivered}

	err := f.uc.Cancel(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestList_EstadoDesconocidoEsInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.List("unknown", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	f.orders.orders["o1"] = &entity.Order{ID: "o1", Status: domorder.StatusPaid}
	f.orders.orders["o2"] = &entity.Order{ID: "o2", Status: domorder.StatusPending}

	out, err := f.uc.List(domorder.StatusPaid, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "o1", out.Items[0].ID)
}
