package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teohome/storefront-backend/api/responses"
	"github.com/teohome/storefront-backend/internal/catalog"
	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
)

func ListCategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.ListCategories(r.Context()))
	}
}

func GetCategory(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slugOrID := strings.TrimSpace(chi.URLParam(r, "slugOrId"))
		if slugOrID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category id or slug is required"))
			return
		}

		responses.WriteSuccess(w, svc.GetCategory(r.Context(), slugOrID))
	}
}
