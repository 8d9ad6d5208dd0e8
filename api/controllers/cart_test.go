package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paketshop/storefront-backend/api/middleware"
	cartsvc "github.com/paketshop/storefront-backend/internal/cart"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/types"
)

type stubCartService struct {
	view    *cartsvc.View
	err     error
	addedID int64
}

func (s *stubCartService) Get(_ context.Context, _ string) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _ string, productID int64) (*cartsvc.View, error) {
	s.addedID = productID
	return s.view, s.err
}

func (s *stubCartService) SetQuantity(_ context.Context, _ string, _ int64, _ int) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _ string, _ int64) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) Clear(_ context.Context, _ string) (*cartsvc.View, error) {
	return s.view, s.err
}

func sessionRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "11111111-1111-4111-8111-111111111111"))
}

func TestCartGetSuccess(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{
		Items:    cartsvc.Lines{{ProductID: 1, Name: "Plov paketi", UnitPriceUZS: 45_000, Quantity: 2}},
		TotalUZS: 90_000,
		Count:    2,
	}}
	handler := CartGet(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalUZS != 90_000 || envelope.Data.Count != 2 {
		t.Fatalf("unexpected view %+v", envelope.Data)
	}
}

func TestCartGetWithoutSession(t *testing.T) {
	handler := CartGet(&stubCartService{view: &cartsvc.View{}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartAddItem(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{Items: cartsvc.Lines{}, Open: true}}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id": 7}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.addedID != 7 {
		t.Fatalf("expected product 7 to be added, got %d", svc.addedID)
	}
}

func TestCartAddItemRejectsMissingProduct(t *testing.T) {
	handler := CartAddItem(&stubCartService{view: &cartsvc.View{}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{}`))

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

func TestCartAddItemMapsNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id": 99}`))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
