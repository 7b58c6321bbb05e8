package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/teohome/storefront-backend/internal/cart"
	"github.com/teohome/storefront-backend/pkg/config"
	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/metrics"
	"github.com/teohome/storefront-backend/pkg/woo"
)

const (
	defaultCountry       = "PL"
	defaultPaymentMethod = "bacs"
	orderStatus          = "processing"

	mockOrderIDMin  = 10000
	mockOrderIDSpan = 90000
)

type cartAccess interface {
	Get(ctx context.Context, sessionID string) (cart.Summary, error)
	Clear(ctx context.Context, sessionID string) (cart.Summary, error)
}

type orderSubmitter interface {
	CreateOrder(ctx context.Context, payload woo.OrderPayload) (*woo.Order, error)
}

// Result is what the storefront receives after submitting an order. Mock is
// set when the upstream API could not take the order and a placeholder was
// fabricated; the HTTP status stays a success either way.
type Result struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Total  string `json:"total"`
	Mock   bool   `json:"mock,omitempty"`
}

// Quote is the order total preview for a session's cart.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Service executes the checkout workflow.
type Service interface {
	Submit(ctx context.Context, sessionID string, form Form) (*Result, error)
	Quote(ctx context.Context, sessionID string) (*Quote, error)
}

type service struct {
	carts     cartAccess
	submitter orderSubmitter
	shipping  config.ShippingConfig
	logg      *logger.Logger
	stats     *metrics.StorefrontMetrics
}

// NewService builds the checkout service. The submitter may be nil when the
// service runs without commerce credentials; every submission then takes the
// mock-order path.
func NewService(carts cartAccess, submitter orderSubmitter, shipping config.ShippingConfig, logg *logger.Logger, stats *metrics.StorefrontMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:     carts,
		submitter: submitter,
		shipping:  shipping,
		logg:      logg,
		stats:     stats,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, form Form) (*Result, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}

	if strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.FirstName) == "" || strings.TrimSpace(form.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Wymagane pola: imię, nazwisko i email")
	}

	if fieldErrs := Validate(form); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrs)
	}

	summary, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Koszyk jest pusty")
	}

	payload := buildPayload(form, summary.Items)

	if s.submitter == nil {
		return s.mockResult(ctx, sessionID, fmt.Errorf("no commerce credentials configured")), nil
	}

	order, err := s.submitter.CreateOrder(ctx, payload)
	if err != nil {
		return s.mockResult(ctx, sessionID, err), nil
	}

	s.clearCart(ctx, sessionID)
	s.stats.IncOrderPlaced()
	return &Result{ID: order.ID, Status: order.Status, Total: order.Total}, nil
}

func (s *service) Quote(ctx context.Context, sessionID string) (*Quote, error) {
	summary, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := summary.TotalPrice
	shipping := parseAmount(s.shipping.FlatRate, "49")
	threshold := parseAmount(s.shipping.FreeThreshold, "500")
	if subtotal.GreaterThanOrEqual(threshold) {
		shipping = decimal.Zero
	}

	return &Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}, nil
}

// mockResult fabricates a placeholder order after an upstream failure. The
// cart is still cleared and the caller still sees a success; the failure is
// visible only in logs and metrics.
func (s *service) mockResult(ctx context.Context, sessionID string, cause error) *Result {
	ctx = s.logg.WithFields(ctx, map[string]any{"error": cause.Error()})
	s.logg.Warn(ctx, "order submission failed, returning mock order")
	s.stats.IncOrderMock()
	s.clearCart(ctx, sessionID)
	return &Result{
		ID:     mockOrderIDMin + rand.IntN(mockOrderIDSpan),
		Status: orderStatus,
		Total:  "0",
		Mock:   true,
	}
}

func (s *service) clearCart(ctx context.Context, sessionID string) {
	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "clear cart after order", err)
	}
}

func buildPayload(form Form, items []cart.Item) woo.OrderPayload {
	country := form.Country
	if strings.TrimSpace(country) == "" {
		country = defaultCountry
	}
	method := form.PaymentMethod
	if strings.TrimSpace(method) == "" {
		method = defaultPaymentMethod
	}

	billing := woo.Address{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Company:   form.Company,
		Address1:  form.Address1,
		Address2:  form.Address2,
		City:      form.City,
		Postcode:  form.Postcode,
		Country:   country,
		Email:     form.Email,
		Phone:     form.Phone,
	}

	shipping := woo.Address{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Address1:  form.Address1,
		City:      form.City,
		Postcode:  form.Postcode,
		Country:   country,
	}
	if !form.ShippingSame {
		shipping = woo.Address{
			FirstName: form.ShippingFirstName,
			LastName:  form.ShippingLastName,
			Address1:  form.ShippingAddress1,
			City:      form.ShippingCity,
			Postcode:  form.ShippingPostcode,
			Country:   country,
		}
	}

	lineItems := make([]woo.OrderLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, woo.OrderLineItem{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}

	return woo.OrderPayload{
		PaymentMethod: method,
		Status:        orderStatus,
		Billing:       billing,
		Shipping:      shipping,
		LineItems:     lineItems,
		CustomerNote:  form.Notes,
	}
}

func parseAmount(raw, fallback string) decimal.Decimal {
	if value, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		return value
	}
	value, _ := decimal.NewFromString(fallback)
	return value
}
