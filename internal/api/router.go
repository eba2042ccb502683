package api

import (
	"net/http"
	"strconv"
	"time"

	_ "fxsummary/docs"
	"fxsummary/internal/metrics"
	"fxsummary/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Group(func(r chi.Router) {
		r.Use(instrument(m))
		r.Get("/health", rateHandler.Health)
		r.Get("/summary", rateHandler.GetSummary)
	})
	return router
}

// instrument records request metrics and an access log line per request.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			duration := time.Since(start)

			if m != nil {
				m.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(duration.Seconds())
				m.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			}

			logrus.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"query":      r.URL.RawQuery,
				"status":     status,
				"duration":   duration,
			}).Info("HTTP request")
		})
	}
}
