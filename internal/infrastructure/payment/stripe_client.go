package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

const checkoutSessionsURL = "https://api.stripe.com/v1/checkout/sessions"

var _ order.PaymentGateway = (*StripeClient)(nil)

// StripeClient implementa PaymentGateway contra la API REST de Stripe Checkout.
// Usa net/http con formularios codificados tal como exige la API de Stripe.
type StripeClient struct {
	secretKey  string
	currency   string // código ISO en minúsculas, ej: "usd", "cop"
	httpClient *http.Client
	baseURL    string
}

// NewStripeClient construye el cliente con un timeout de red generoso (30 s);
// la creación de sesiones en Stripe puede tardar varios segundos.
func NewStripeClient(secretKey, currency string) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		currency:   strings.ToLower(currency),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    checkoutSessionsURL,
	}
}

// checkoutSessionResponse subconjunto de la respuesta de Stripe que nos interesa.
type checkoutSessionResponse struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	URL           string `json:"url"`
	Error         *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession crea la sesión de pago para la orden. Cada línea del
// snapshot se traduce a un line_item con el precio unitario congelado; Stripe
// trabaja en unidades mínimas (centavos), de ahí la conversión.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, o *entity.Order, successURL, cancelURL string) (*order.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("client_reference_id", o.ID)
	form.Set("metadata[order_id]", o.ID)

	for i, item := range o.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][product_data][name]", item.ProductName)
		form.Set(prefix+"[price_data][unit_amount]", toMinorUnits(item.UnitPrice))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("stripe: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("stripe: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("stripe: leer respuesta: %w", err)
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(rawBody, &session); err != nil {
		return nil, fmt.Errorf("stripe: parsear respuesta (HTTP %d): %w", resp.StatusCode, err)
	}
	if session.Error != nil {
		return nil, fmt.Errorf("stripe: %s: %s", session.Error.Type, session.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe: respuesta inesperada HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	return &order.CheckoutSession{
		SessionID:       session.ID,
		PaymentIntentID: session.PaymentIntent,
		URL:             session.URL,
	}, nil
}

// toMinorUnits convierte un precio decimal a unidades mínimas de Stripe
// (100 centavos por unidad) sin pérdida.
func toMinorUnits(price decimal.Decimal) string {
	return price.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}
