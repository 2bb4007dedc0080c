package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"merchops/internal/application"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ShopifyHandlers serves the store proxy endpoints.
type ShopifyHandlers struct {
	gateway *application.GatewayService
	linker  *application.OrderLinker
	logger  zerolog.Logger
}

// NewShopifyHandlers creates the Shopify endpoint handlers
func NewShopifyHandlers(gateway *application.GatewayService, linker *application.OrderLinker, logger zerolog.Logger) *ShopifyHandlers {
	return &ShopifyHandlers{
		gateway: gateway,
		linker:  linker,
		logger:  logger,
	}
}

// ListProducts handles GET /api/shopify/products
func (h *ShopifyHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.gateway.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProduct handles GET /api/shopify/products/{id}
func (h *ShopifyHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.gateway.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

// ListOrders handles GET /api/shopify/orders with an optional
// productId filter.
func (h *ShopifyHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	var productID uint64
	if raw := r.URL.Query().Get("productId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid productId filter")
			return
		}
		productID = id
	}

	orders, err := h.gateway.ListOrders(r.Context(), productID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder handles GET /api/shopify/orders/{id}
func (h *ShopifyHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.gateway.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

type linkOrdersRequest struct {
	CampID   string   `json:"campId"`
	OrderIDs []string `json:"orderIds"`
}

// LinkOrdersToCamp handles POST /api/shopify/link-orders-to-camp. The
// response always carries one result per requested order; per-order
// failures are reported in-band, not as an HTTP error.
func (h *ShopifyHandlers) LinkOrdersToCamp(w http.ResponseWriter, r *http.Request) {
	var req linkOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CampID == "" || len(req.OrderIDs) == 0 {
		writeError(w, http.StatusBadRequest, "campId and orderIds are required")
		return
	}

	results, err := h.linker.LinkOrdersToCamp(r.Context(), req.CampID, req.OrderIDs)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// ConnectionStatus handles GET /api/shopify/connection-status
func (h *ShopifyHandlers) ConnectionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.gateway.ConnectionStatus(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
