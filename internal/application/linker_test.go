package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"merchops/internal/domain"
	"merchops/internal/infrastructure/shopify"
)

// fakeGateway serves canned responses per endpoint, failing the
// endpoints listed in fail.
type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]string
	fail      map[string]error
	calls     []string
}

func (f *fakeGateway) Request(ctx context.Context, method, endpoint string, body interface{}, override *domain.ShopifyCredentials) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method+" "+endpoint)
	f.mu.Unlock()

	if err, ok := f.fail[endpoint]; ok {
		return nil, err
	}
	resp, ok := f.responses[endpoint]
	if !ok {
		return nil, &shopify.UpstreamError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	return json.RawMessage(resp), nil
}

type fakeCampRepo struct {
	camps map[string]*domain.Camp
}

func (f *fakeCampRepo) GetByID(ctx context.Context, id string) (*domain.Camp, error) {
	return f.camps[id], nil
}

func (f *fakeCampRepo) List(ctx context.Context) ([]*domain.Camp, error) { return nil, nil }

func (f *fakeCampRepo) Create(ctx context.Context, camp *domain.Camp) error { return nil }

type fakeRegistrationRepo struct {
	mu      sync.Mutex
	created []*domain.Registration
	nextID  int
	failFor uint64
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, registration *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor != 0 && registration.OrderID == f.failFor {
		return fmt.Errorf("duplicate registration for order %d", registration.OrderID)
	}
	f.nextID++
	registration.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.created = append(f.created, registration)
	return nil
}

func (f *fakeRegistrationRepo) ListByCamp(ctx context.Context, campID string) ([]*domain.Registration, error) {
	return nil, nil
}

func (f *fakeRegistrationRepo) GetByOrderID(ctx context.Context, orderID uint64) (*domain.Registration, error) {
	return nil, nil
}

func (f *fakeRegistrationRepo) UpdateStatusByOrderID(ctx context.Context, orderID uint64, status domain.RegistrationStatus) error {
	return nil
}

func orderJSON(id uint64, name, email, customer string) string {
	return fmt.Sprintf(`{"order":{"id":%d,"name":"%s","email":"%s","customer":{"first_name":"%s","last_name":""},"line_items":[{"title":"Camp Hoodie","variant_title":"M","sku":"HD-M","quantity":2}]}}`,
		id, name, email, customer)
}

func newTestLinker(gw *fakeGateway, camps *fakeCampRepo, regs *fakeRegistrationRepo, concurrency int64) *OrderLinker {
	gateway := NewGatewayService(gw, zerolog.Nop())
	return NewOrderLinker(gateway, camps, regs, concurrency, zerolog.Nop())
}

func TestLinkOrdersToCampAllSucceed(t *testing.T) {
	gw := &fakeGateway{responses: map[string]string{
		"orders/101.json": orderJSON(101, "#1001", "ana@example.com", "Ana"),
		"orders/102.json": orderJSON(102, "#1002", "bo@example.com", "Bo"),
	}}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1", Name: "Summer Camp"}}}
	regs := &fakeRegistrationRepo{}

	results, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "camp-1", []string{"101", "102"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, want := range []string{"101", "102"} {
		require.Equal(t, want, results[i].OrderID)
		require.True(t, results[i].Success)
		require.NotEmpty(t, results[i].RegistrationID)
	}

	require.Len(t, regs.created, 2)
	require.Equal(t, "camp-1", regs.created[0].CampID)
	require.Equal(t, domain.RegistrationStatusPending, regs.created[0].Status)
	require.Equal(t, []domain.RegistrationItem{{Title: "Camp Hoodie", VariantTitle: "M", SKU: "HD-M", Quantity: 2}}, regs.created[0].Items)
}

func TestLinkOrdersToCampIsolatesFailures(t *testing.T) {
	gw := &fakeGateway{
		responses: map[string]string{
			"orders/101.json": orderJSON(101, "#1001", "ana@example.com", "Ana"),
			"orders/103.json": orderJSON(103, "#1003", "cy@example.com", "Cy"),
		},
		fail: map[string]error{
			"orders/102.json": &shopify.UpstreamError{StatusCode: http.StatusNotFound, Message: "Not Found"},
		},
	}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	regs := &fakeRegistrationRepo{}

	results, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "camp-1", []string{"101", "102", "103"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results keep the input order.
	require.Equal(t, []string{"101", "102", "103"}, []string{results[0].OrderID, results[1].OrderID, results[2].OrderID})

	require.True(t, results[0].Success)
	require.False(t, results[1].Success)
	require.Contains(t, results[1].Error, "Not Found")
	require.True(t, results[2].Success)

	// The order after the failed one was still processed.
	require.Len(t, regs.created, 2)
}

func TestLinkOrdersToCampRejectsMalformedID(t *testing.T) {
	gw := &fakeGateway{responses: map[string]string{}}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	regs := &fakeRegistrationRepo{}

	results, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "camp-1", []string{"not-a-number"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Contains(t, results[0].Error, "invalid order id")

	// A malformed ID never reaches the upstream.
	require.Empty(t, gw.calls)
}

func TestLinkOrdersToCampUnknownCamp(t *testing.T) {
	gw := &fakeGateway{responses: map[string]string{}}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{}}
	regs := &fakeRegistrationRepo{}

	_, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "missing", []string{"101"})
	require.ErrorIs(t, err, ErrCampNotFound)
	require.Empty(t, gw.calls)
}

func TestLinkOrdersToCampRegistrationFailureIsPerOrder(t *testing.T) {
	gw := &fakeGateway{responses: map[string]string{
		"orders/101.json": orderJSON(101, "#1001", "ana@example.com", "Ana"),
		"orders/102.json": orderJSON(102, "#1002", "bo@example.com", "Bo"),
	}}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	regs := &fakeRegistrationRepo{failFor: 101}

	results, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "camp-1", []string{"101", "102"})
	require.NoError(t, err)
	require.False(t, results[0].Success)
	require.Contains(t, results[0].Error, "duplicate registration")
	require.True(t, results[1].Success)
}

func TestLinkOrdersToCampConcurrentBatch(t *testing.T) {
	responses := make(map[string]string)
	orderIDs := make([]string, 0, 8)
	for i := uint64(1); i <= 8; i++ {
		responses[fmt.Sprintf("orders/%d.json", i)] = orderJSON(i, fmt.Sprintf("#%d", 1000+i), "c@example.com", "Customer")
		orderIDs = append(orderIDs, fmt.Sprintf("%d", i))
	}
	gw := &fakeGateway{responses: responses}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	regs := &fakeRegistrationRepo{}

	results, err := newTestLinker(gw, camps, regs, 4).LinkOrdersToCamp(context.Background(), "camp-1", orderIDs)
	require.NoError(t, err)
	require.Len(t, results, 8)
	for i, r := range results {
		require.Equal(t, orderIDs[i], r.OrderID)
		require.True(t, r.Success)
	}
	require.Len(t, regs.created, 8)
}

func TestCustomerNameFallsBackToEmail(t *testing.T) {
	gw := &fakeGateway{responses: map[string]string{
		"orders/101.json": `{"order":{"id":101,"name":"#1001","email":"anon@example.com","line_items":[]}}`,
	}}
	camps := &fakeCampRepo{camps: map[string]*domain.Camp{"camp-1": {ID: "camp-1"}}}
	regs := &fakeRegistrationRepo{}

	results, err := newTestLinker(gw, camps, regs, 1).LinkOrdersToCamp(context.Background(), "camp-1", []string{"101"})
	require.NoError(t, err)
	require.True(t, results[0].Success)
	require.Equal(t, "anon@example.com", results[0].CustomerName)
}
