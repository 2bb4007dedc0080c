package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"merchops/internal/application"
	"merchops/internal/domain"
	"merchops/internal/infrastructure/shopify"
)

type stubGateway struct {
	responses map[string]string
	fail      map[string]error
}

func (s *stubGateway) Request(ctx context.Context, method, endpoint string, body interface{}, override *domain.ShopifyCredentials) (json.RawMessage, error) {
	if err, ok := s.fail[endpoint]; ok {
		return nil, err
	}
	resp, ok := s.responses[endpoint]
	if !ok {
		return nil, &shopify.UpstreamError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	return json.RawMessage(resp), nil
}

type stubCampRepo struct {
	camps map[string]*domain.Camp
}

func (s *stubCampRepo) GetByID(ctx context.Context, id string) (*domain.Camp, error) {
	return s.camps[id], nil
}

func (s *stubCampRepo) List(ctx context.Context) ([]*domain.Camp, error) { return nil, nil }

func (s *stubCampRepo) Create(ctx context.Context, camp *domain.Camp) error { return nil }

type stubRegistrationRepo struct {
	created int
}

func (s *stubRegistrationRepo) Create(ctx context.Context, registration *domain.Registration) error {
	s.created++
	registration.ID = fmt.Sprintf("reg-%d", s.created)
	return nil
}

func (s *stubRegistrationRepo) ListByCamp(ctx context.Context, campID string) ([]*domain.Registration, error) {
	return nil, nil
}

func (s *stubRegistrationRepo) GetByOrderID(ctx context.Context, orderID uint64) (*domain.Registration, error) {
	return nil, nil
}

func (s *stubRegistrationRepo) UpdateStatusByOrderID(ctx context.Context, orderID uint64, status domain.RegistrationStatus) error {
	return nil
}

func newShopifyTestRouter(gw *stubGateway, camps *stubCampRepo) http.Handler {
	gateway := application.NewGatewayService(gw, zerolog.Nop())
	linker := application.NewOrderLinker(gateway, camps, &stubRegistrationRepo{}, 1, zerolog.Nop())
	h := NewShopifyHandlers(gateway, linker, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/api/shopify/products", h.ListProducts)
	r.Get("/api/shopify/products/{id}", h.GetProduct)
	r.Get("/api/shopify/orders", h.ListOrders)
	r.Get("/api/shopify/orders/{id}", h.GetOrder)
	r.Post("/api/shopify/link-orders-to-camp", h.LinkOrdersToCamp)
	r.Get("/api/shopify/connection-status", h.ConnectionStatus)
	return r
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	router := newShopifyTestRouter(&stubGateway{}, &stubCampRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/products/not-a-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid product id"}`, rec.Body.String())
}

func TestListProductsUpstreamFailureIs500WithMessage(t *testing.T) {
	gw := &stubGateway{fail: map[string]error{
		"products.json": &shopify.UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "Exceeded 2 calls per second for api client"},
	}}
	router := newShopifyTestRouter(gw, &stubCampRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Exceeded 2 calls per second for api client"}`, rec.Body.String())
}

func TestListProductsMissingCredentialsIs500(t *testing.T) {
	gw := &stubGateway{fail: map[string]error{
		"products.json": fmt.Errorf("%w: missing SHOPIFY_API_KEY", domain.ErrMissingCredentials),
	}}
	router := newShopifyTestRouter(gw, &stubCampRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "SHOPIFY_API_KEY")
}

func TestListOrdersRejectsMalformedFilter(t *testing.T) {
	router := newShopifyTestRouter(&stubGateway{}, &stubCampRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/orders?productId=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinkOrdersValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"campId":`},
		{name: "missing camp", body: `{"orderIds":["101"]}`},
		{name: "empty orders", body: `{"campId":"camp-1","orderIds":[]}`},
	}

	router := newShopifyTestRouter(&stubGateway{}, &stubCampRepo{})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/shopify/link-orders-to-camp", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLinkOrdersUnknownCampIs404(t *testing.T) {
	router := newShopifyTestRouter(&stubGateway{}, &stubCampRepo{camps: map[string]*domain.Camp{}})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/link-orders-to-camp",
		strings.NewReader(`{"campId":"missing","orderIds":["101"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"camp not found"}`, rec.Body.String())
}

func TestLinkOrdersPartialFailureIsStill200(t *testing.T) {
	gw := &stubGateway{responses: map[string]string{
		"orders/101.json": `{"order":{"id":101,"name":"#1001","email":"ana@example.com","line_items":[]}}`,
	}}
	camps := &stubCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	router := newShopifyTestRouter(gw, camps)

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/link-orders-to-camp",
		strings.NewReader(`{"campId":"camp-1","orderIds":["101","102"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Results []domain.LinkResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Results, 2)
	require.True(t, payload.Results[0].Success)
	require.False(t, payload.Results[1].Success)
	require.Contains(t, payload.Results[1].Error, "Not Found")
}

func TestConnectionStatusEndpoint(t *testing.T) {
	gw := &stubGateway{responses: map[string]string{
		"shop.json": `{"shop":{"name":"Merch Store","domain":"merch.myshopify.com"}}`,
	}}
	router := newShopifyTestRouter(gw, &stubCampRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/connection-status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.ConnectionStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.Connected)
	require.Equal(t, "Merch Store", status.ShopName)
}
