package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paketshop/storefront-backend/api/controllers"
	"github.com/paketshop/storefront-backend/api/middleware"
	cartsvc "github.com/paketshop/storefront-backend/internal/cart"
	"github.com/paketshop/storefront-backend/internal/catalog"
	checkoutsvc "github.com/paketshop/storefront-backend/internal/checkout"
	"github.com/paketshop/storefront-backend/pkg/config"
	"github.com/paketshop/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutManager *checkoutsvc.Manager,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisP, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(catalogService, logg))
			r.Get("/{id}", controllers.ProductsGet(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productID}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutGet(checkoutManager, logg))
			r.Post("/", controllers.CheckoutSubmit(checkoutManager, logg))
			r.Post("/promo", controllers.CheckoutPromo(checkoutManager, logg))
			r.Post("/confirm", controllers.CheckoutConfirm(checkoutManager, logg))
			r.Post("/cancel", controllers.CheckoutCancel(checkoutManager, logg))
		})
	})

	return r
}
