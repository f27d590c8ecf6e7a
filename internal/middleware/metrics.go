// Package middleware provides authentication, logging, rate limiting and
// observability middleware for the application.
package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brainwave_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// SessionEvents counts session lifecycle events (issued, destroyed, revoked).
var SessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brainwave_session_events_total",
	Help: "Total number of session lifecycle events",
}, []string{"event"})

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is shared; fiberprometheus registers on the default registry
// and duplicate registration panics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the request-metrics handler for the Prometheus middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
