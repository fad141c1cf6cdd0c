// Package admin serves the authenticated admin JSON API.
package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/retail-dashboard/internal/dependency"
)

// Server implements handlers for admin.
type Server struct {
	dashboard dependency.OrdersDashboard
	products  dependency.Products
	orders    dependency.Order
	cache     dependency.ProductInvalidator
	rates     dependency.RatesService
	// loc is the zone bare dates in requests are read in.
	loc *time.Location
}

// New creates a new server with admin handlers. products and orders may be nil
// when the dashboard reads from a store without catalog writes.
func New(
	dashboard dependency.OrdersDashboard,
	products dependency.Products,
	orders dependency.Order,
	cache dependency.ProductInvalidator,
	rates dependency.RatesService,
	loc *time.Location,
) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		dashboard: dashboard,
		products:  products,
		orders:    orders,
		cache:     cache,
		rates:     rates,
		loc:       loc,
	}
}

// Routes returns the admin router, mounted under /api/admin.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard/orders", s.getOrdersDashboard)

	if s.products != nil {
		r.Post("/products", s.addProduct)
		r.Route("/products/{id}", func(sr chi.Router) {
			sr.Get("/", s.getProductById)
			sr.Delete("/", s.deleteProductById)
		})
	}
	if s.orders != nil {
		r.Post("/orders", s.createOrder)
		r.Route("/orders/{uuid}", func(sr chi.Router) {
			sr.Get("/", s.getOrderByUUID)
			sr.Put("/status", s.updateOrderStatus)
			sr.Put("/tracking", s.setTrackingNumber)
		})
	}
	if s.cache != nil {
		r.Post("/cache/products/flush", s.flushProductCache)
	}
	return r
}
