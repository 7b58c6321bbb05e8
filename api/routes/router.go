package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teohome/storefront-backend/api/controllers"
	"github.com/teohome/storefront-backend/api/middleware"
	cartsvc "github.com/teohome/storefront-backend/internal/cart"
	"github.com/teohome/storefront-backend/internal/catalog"
	checkoutsvc "github.com/teohome/storefront-backend/internal/checkout"
	"github.com/teohome/storefront-backend/pkg/config"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/metrics"
	"github.com/teohome/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisPinger redis.Pinger,
	catalogService *catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	stats *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(stats),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger, catalogService))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productId:[0-9]+}/variations", controllers.ListProductVariations(catalogService, logg))
			r.Get("/{productId:[0-9]+}/related", controllers.ListRelatedProducts(catalogService, logg))
			r.Get("/{slugOrId}", controllers.GetProduct(catalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/{slugOrId}", controllers.GetCategory(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, catalogService, cfg.Cart.MaxQuantity, logg))
				r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, cfg.Cart.MaxQuantity, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			})

			r.Get("/checkout/quote", controllers.CheckoutQuote(checkoutService, logg))
			r.Post("/orders", controllers.SubmitOrder(checkoutService, logg))
		})
	})

	return r
}
