package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InitMetrics creates the Prometheus HTTP middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crowdnest_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DonationsAccepted counts donations accepted by the funding ledger.
	DonationsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crowdnest_donations_accepted_total",
		Help: "Total number of accepted donations",
	})

	// DonationsRejected counts donations rejected by the funding ledger,
	// labelled with the validation rule that fired.
	DonationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crowdnest_donations_rejected_total",
		Help: "Total number of rejected donations by reason",
	}, []string{"reason"})

	// RatingsRecorded counts rating upserts applied to projects.
	RatingsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crowdnest_ratings_recorded_total",
		Help: "Total number of recorded project ratings",
	})
)
