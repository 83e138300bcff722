package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bakery-dispatch/internal/http/handlers"
	obs "bakery-dispatch/internal/http/middleware"
	"bakery-dispatch/internal/http/middleware/ratelimit"
	"bakery-dispatch/internal/logx"
)

const requestTimeout = 15 * time.Second

// Deps holds everything the router mounts.
type Deps struct {
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Couriers  *handlers.CourierHandler
	RateLimit *ratelimit.Middleware
	Metrics   obs.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Logger    logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
// Rate limiting applies to /api only.
func New(d Deps) http.Handler {
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.RateLimit == nil {
		d.RateLimit = ratelimit.New(d.Logger, nil, nil)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(d.Logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(d.RateLimit.Handler())

		r.Get("/order", d.Orders.List)
		r.Get("/order/all-completed", d.Orders.ListCompleted)
		r.Get("/order/user", d.Orders.ListMine)
		r.Get("/order/count", d.Orders.Count)
		r.Get("/sales/count", d.Orders.Sales)

		r.Get("/orders/{orderId}/assignment", d.Orders.Assignment)
		r.Put("/orders/{orderId}/status", d.Orders.ChangeStatus)
		r.Post("/update-kurir", d.Orders.Reassign)

		r.Get("/kurir", d.Couriers.List)
		r.Get("/kurir/{id}", d.Couriers.GetByID)
		r.Get("/kurir/order/{id}", d.Couriers.ActiveOrders)
		r.Get("/kurir/history/{id}", d.Couriers.History)
		r.Post("/kurir/complete", d.Orders.CompleteDelivery)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
