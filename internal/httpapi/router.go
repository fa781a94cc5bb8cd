package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samstech/techstore/internal/cart"
	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/checkout"
	"github.com/samstech/techstore/internal/notify"
	"github.com/samstech/techstore/internal/prefs"
	"github.com/samstech/techstore/internal/view"
)

// Deps bundles everything the router serves.
type Deps struct {
	Catalog  *catalog.Catalog
	Carts    *cart.Store
	Checkout *checkout.Manager
	Views    *view.Controller
	Prefs    *prefs.Service
	Notifier notify.Notifier

	RequestTimeout time.Duration
}

func NewRouter(deps Deps) chi.Router {
	productHandler := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog, deps.Notifier)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Views)
	viewHandler := NewViewHandler(deps.Views)
	prefsHandler := NewPrefsHandler(deps.Prefs)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.SetQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Open)
			r.Put("/form", checkoutHandler.UpdateField)
			r.Post("/submit", checkoutHandler.Submit)
			r.Delete("/", checkoutHandler.Close)
		})

		r.Route("/view", func(r chi.Router) {
			r.Get("/", viewHandler.GetState)
			r.Post("/home", viewHandler.ShowHome)
			r.Post("/product/{product_id}", viewHandler.ShowProduct)
			r.Post("/page/{page}", viewHandler.SetPage)
			r.Post("/cart/open", viewHandler.OpenCart)
			r.Post("/cart/close", viewHandler.CloseCart)
		})

		r.Route("/prefs", func(r chi.Router) {
			r.Get("/theme", prefsHandler.GetTheme)
			r.Put("/theme", prefsHandler.SetTheme)
		})
	})

	return r
}
