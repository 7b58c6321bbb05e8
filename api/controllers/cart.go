package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teohome/storefront-backend/api/middleware"
	"github.com/teohome/storefront-backend/api/responses"
	"github.com/teohome/storefront-backend/api/validators"
	cartsvc "github.com/teohome/storefront-backend/internal/cart"
	"github.com/teohome/storefront-backend/internal/catalog"
	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/woo"
)

type addCartItemRequest struct {
	ProductID   int               `json:"product_id" validate:"required,min=1"`
	VariationID int               `json:"variation_id,omitempty" validate:"omitempty,min=1"`
	Quantity    int               `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartFetch returns the shopper's cart with derived totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartAddItem adds a product to the cart. The product is resolved from the
// catalog so the stored line carries the current name, image and price; the
// client only names the product and its chosen options.
func CartAddItem(svc cartsvc.Service, catalogSvc *catalog.Service, maxQuantity int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity > maxQuantity {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the allowed maximum").WithDetails(map[string]any{"max": maxQuantity}))
			return
		}

		product := catalogSvc.GetProduct(r.Context(), strconv.Itoa(payload.ProductID))

		var variation *woo.Variation
		if payload.VariationID != 0 {
			variation = findVariation(r, catalogSvc, payload.ProductID, payload.VariationID)
			if variation == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown product variation"))
				return
			}
		}

		summary, err := svc.AddItem(r.Context(), sessionID, cartsvc.AddItemInput{
			Product:            product,
			Quantity:           quantity,
			Variation:          variation,
			SelectedAttributes: payload.Attributes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartUpdateItem changes a line's quantity. Zero and below removes the line.
func CartUpdateItem(svc cartsvc.Service, maxQuantity int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := cartItemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity > maxQuantity {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the allowed maximum").WithDetails(map[string]any{"max": maxQuantity}))
			return
		}

		summary, err := svc.UpdateQuantity(r.Context(), sessionID, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartRemoveItem deletes a line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := cartItemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.RemoveItem(r.Context(), sessionID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func sessionIDFromContext(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing from request context")
	}
	return sessionID, nil
}

func cartItemIDFromPath(r *http.Request) (string, error) {
	itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
	if itemID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	return itemID, nil
}

func findVariation(r *http.Request, catalogSvc *catalog.Service, productID, variationID int) *woo.Variation {
	for _, v := range catalogSvc.ListVariations(r.Context(), productID) {
		if v.ID == variationID {
			return &v
		}
	}
	return nil
}
