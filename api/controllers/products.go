package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teohome/storefront-backend/api/responses"
	"github.com/teohome/storefront-backend/api/validators"
	"github.com/teohome/storefront-backend/internal/catalog"
	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
)

const (
	maxPerPage   = 100
	maxSearchLen = 120
)

// ListProducts serves the product listing with the storefront's filter set.
func ListProducts(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		perPage, err := validators.ParseQueryInt(r, "per_page", 0, 0, maxPerPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := catalog.ListParams{
			PerPage:  perPage,
			Page:     page,
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Featured: validators.ParseQueryBool(r, "featured"),
			OnSale:   validators.ParseQueryBool(r, "on_sale"),
			OrderBy:  strings.TrimSpace(r.URL.Query().Get("orderby")),
			Order:    strings.TrimSpace(r.URL.Query().Get("order")),
			Search:   validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
		}

		responses.WriteSuccess(w, svc.ListProducts(r.Context(), params))
	}
}

// GetProduct resolves a single product by numeric id or slug.
func GetProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slugOrID := strings.TrimSpace(chi.URLParam(r, "slugOrId"))
		if slugOrID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id or slug is required"))
			return
		}

		responses.WriteSuccess(w, svc.GetProduct(r.Context(), slugOrID))
	}
}

// ListProductVariations serves the variation list for a variable product.
func ListProductVariations(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.ListVariations(r.Context(), productID))
	}
}

// ListRelatedProducts serves the "you may also like" block for a product page.
func ListRelatedProducts(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.ListRelated(r.Context(), productID))
	}
}

func parseProductID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}
	return id, nil
}
