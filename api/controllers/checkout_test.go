package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	cartsvc "github.com/paketshop/storefront-backend/internal/cart"
	checkoutsvc "github.com/paketshop/storefront-backend/internal/checkout"
	"github.com/paketshop/storefront-backend/pkg/config"
	"github.com/paketshop/storefront-backend/pkg/db/models"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/logger"
	"github.com/paketshop/storefront-backend/pkg/payment"
	"github.com/paketshop/storefront-backend/pkg/types"
)

type memFlows struct {
	flows map[string]*checkoutsvc.Flow
}

func (m *memFlows) Load(_ context.Context, sessionID string) (*checkoutsvc.Flow, error) {
	return m.flows[sessionID], nil
}

func (m *memFlows) Save(_ context.Context, sessionID string, flow *checkoutsvc.Flow) error {
	m.flows[sessionID] = flow
	return nil
}

func (m *memFlows) Delete(_ context.Context, sessionID string) error {
	delete(m.flows, sessionID)
	return nil
}

type noopOrders struct{}

func (noopOrders) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

type trackingCart struct {
	lines   cartsvc.Lines
	cleared bool
}

func (c *trackingCart) Get(_ context.Context, _ string) (*cartsvc.View, error) {
	lines := c.lines
	if c.cleared {
		lines = nil
	}
	return &cartsvc.View{Items: lines, TotalUZS: lines.TotalUZS(), Count: lines.Count()}, nil
}

func (c *trackingCart) Clear(_ context.Context, _ string) (*cartsvc.View, error) {
	c.cleared = true
	return &cartsvc.View{Items: cartsvc.Lines{}}, nil
}

func newTestManager(t *testing.T) *checkoutsvc.Manager {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	links, err := payment.NewBuilder(config.PaymentConfig{
		ProviderURL:        "https://paynet.uz/pay/paketshop",
		QRFallbackEndpoint: "https://api.qrserver.com/v1/create-qr-code/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coord, err := checkoutsvc.NewCoordinator(checkoutsvc.CoordinatorOptions{
		Orders: noopOrders{},
		Cart: &trackingCart{lines: cartsvc.Lines{
			{ProductID: 1, Name: "Plov paketi", UnitPriceUZS: 45_000, Quantity: 2},
		}},
		Links:  links,
		Logger: logg,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager, err := checkoutsvc.NewManager(&memFlows{flows: map[string]*checkoutsvc.Flow{}}, coord, logg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return manager
}

const submitBody = `{
	"first_name": "Aziz",
	"last_name": "Karimov",
	"phone": "+998901234567",
	"city": "Toshkent",
	"address": "Chilonzor 12",
	"payment_method": "cash"
}`

func TestCheckoutSubmitCash(t *testing.T) {
	manager := newTestManager(t)
	handler := CheckoutSubmit(manager, nil)

	resp := httptest.NewRecorder()
	start := time.Now()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", submitBody))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	// The cash wait is zero-valued in tests, so this stays instant.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("submission took too long: %v", elapsed)
	}

	var envelope struct {
		Data checkoutsvc.Flow `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != enums.FlowStateSuccess {
		t.Fatalf("expected success, got %s", envelope.Data.State)
	}
	if envelope.Data.OrderID == "" {
		t.Fatal("expected an order id")
	}
}

func TestCheckoutSubmitRejectsBadPaymentMethod(t *testing.T) {
	handler := CheckoutSubmit(newTestManager(t), nil)

	body := `{
		"first_name": "Aziz",
		"last_name": "Karimov",
		"phone": "+998901234567",
		"city": "Toshkent",
		"address": "Chilonzor 12",
		"payment_method": "crypto"
	}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutPromoPreview(t *testing.T) {
	handler := CheckoutPromo(newTestManager(t), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout/promo", `{"code": "PAKET2026"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data promoResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.DiscountUZS != 9_000 || envelope.Data.TotalUZS != 81_000 {
		t.Fatalf("unexpected preview %+v", envelope.Data)
	}
	if envelope.Data.FormattedTotal != "81 000 UZS" {
		t.Fatalf("unexpected formatted total %q", envelope.Data.FormattedTotal)
	}
}

func TestCheckoutPromoRejectsUnknownCode(t *testing.T) {
	handler := CheckoutPromo(newTestManager(t), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout/promo", `{"code": "NOPE"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestCheckoutConfirmWithoutPendingPayment(t *testing.T) {
	handler := CheckoutConfirm(newTestManager(t), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout/confirm", ""))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutGetDefaultsToForm(t *testing.T) {
	handler := CheckoutGet(newTestManager(t), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/checkout", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data checkoutsvc.Flow `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != enums.FlowStateForm {
		t.Fatalf("expected the form state, got %s", envelope.Data.State)
	}
}
