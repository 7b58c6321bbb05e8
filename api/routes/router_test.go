package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	cartsvc "github.com/teohome/storefront-backend/internal/cart"
	"github.com/teohome/storefront-backend/internal/catalog"
	checkoutsvc "github.com/teohome/storefront-backend/internal/checkout"
	"github.com/teohome/storefront-backend/pkg/config"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "dev", Port: "8080"},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Cart:     config.CartConfig{MaxQuantity: 99},
		Shipping: config.ShippingConfig{FlatRate: "49", FreeThreshold: "500"},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	catalogService, err := catalog.NewService(catalog.SourceFixture, nil, logg)
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewMemoryStore(), logg, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, nil, testConfig().Shipping, logg, nil)
	if err != nil {
		t.Fatalf("checkout.NewService: %v", err)
	}

	registry := prometheus.NewRegistry()
	stats := metrics.NewStorefrontMetrics(registry)

	return NewRouter(testConfig(), logg, stubPinger{}, catalogService, cartService, checkoutService, stats, registry)
}

func doJSON(t *testing.T, router http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("X-Cart-Session", session)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/health/live", "", nil); w.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", w.Code)
	}
	var ready map[string]string
	decodeData(t, w, &ready)
	if ready["catalog_source"] != "fixture" {
		t.Fatalf("expected fixture catalog source, got %q", ready["catalog_source"])
	}
}

func TestProductAndCategoryRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?featured=1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products: expected 200, got %d", w.Code)
	}
	var products []map[string]any
	decodeData(t, w, &products)
	if len(products) == 0 {
		t.Fatal("expected featured products")
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/szafka-kuchenna-paris", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get product: expected 200, got %d", w.Code)
	}
	var product map[string]any
	decodeData(t, w, &product)
	if product["slug"] != "szafka-kuchenna-paris" {
		t.Fatalf("unexpected product %v", product["slug"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/1/related", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("related: expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d", w.Code)
	}
	var categories []map[string]any
	decodeData(t, w, &categories)
	if len(categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(categories))
	}
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	session := "router-test-session"

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", session, map[string]any{
		"product_id": 1,
		"quantity":   2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary struct {
		Items      []map[string]any `json:"items"`
		TotalItems int              `json:"total_items"`
	}
	decodeData(t, w, &summary)
	if summary.TotalItems != 2 || len(summary.Items) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	itemID, _ := summary.Items[0]["id"].(string)
	if itemID == "" {
		t.Fatal("expected item id in response")
	}

	w = doJSON(t, router, http.MethodPatch, "/api/v1/cart/items/"+itemID, session, map[string]any{"quantity": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("update item: expected 200, got %d", w.Code)
	}
	decodeData(t, w, &summary)
	if summary.TotalItems != 5 {
		t.Fatalf("expected 5 items after update, got %d", summary.TotalItems)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/"+itemID, session, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove item: expected 200, got %d", w.Code)
	}
	decodeData(t, w, &summary)
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", summary)
	}
}

func TestCartSessionIsMinted(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Cart-Session") == "" {
		t.Fatal("expected a minted session header")
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "teohome_cart" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected teohome_cart cookie to be set")
	}
}

func TestOrderSubmissionOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	session := "order-test-session"

	form := map[string]any{
		"email":         "jan@example.com",
		"first_name":    "Jan",
		"last_name":     "Kowalski",
		"phone":         "600100200",
		"address_1":     "ul. Meblowa 5",
		"city":          "Warszawa",
		"postcode":      "00-001",
		"shipping_same": true,
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", session, form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart should reject: expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Koszyk jest pusty") {
		t.Fatalf("expected empty cart message, got %s", w.Body.String())
	}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", session, map[string]any{"product_id": 1}); w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", session, form)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
		Mock   bool   `json:"mock"`
	}
	decodeData(t, w, &result)
	if !result.Mock || result.Status != "processing" {
		t.Fatalf("expected mock processing order, got %+v", result)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", session, nil)
	var after struct {
		Items []map[string]any `json:"items"`
	}
	decodeData(t, w, &after)
	if len(after.Items) != 0 {
		t.Fatalf("cart should be empty after order, got %+v", after)
	}
}

func TestCheckoutQuoteOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	session := "quote-test-session"

	if w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", session, map[string]any{"product_id": 1}); w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/checkout/quote", session, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d", w.Code)
	}
	var quote struct {
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	}
	decodeData(t, w, &quote)
	if quote.Shipping != "49" {
		t.Fatalf("expected flat shipping below threshold, got %+v", quote)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil); w.Code != http.StatusOK {
		t.Fatalf("warmup request failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_request_duration_seconds") {
		t.Fatal("expected request duration metric in exposition")
	}
}

func TestQuantityCapEnforced(t *testing.T) {
	router := newTestRouter(t)
	session := "cap-test-session"

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", session, map[string]any{
		"product_id": 1,
		"quantity":   100,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for quantity over cap, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "quantity exceeds") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
