package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "motorent",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	rentalsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "motorent",
			Name:      "rentals_created_total",
			Help:      "Rentals successfully created.",
		},
	)

	rentalConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "motorent",
			Name:      "rental_conflicts_total",
			Help:      "Rental attempts rejected because the car was taken.",
		},
	)

	rentalStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "motorent",
			Name:      "rental_status_changes_total",
			Help:      "Rental status transitions by target status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, rentalsCreated, rentalConflicts, rentalStatusChanges)
	})
}

// IncHTTP increments the request counter for a handled route.
func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncRentalCreated() {
	rentalsCreated.Inc()
}

func IncRentalConflict() {
	rentalConflicts.Inc()
}

func IncRentalStatusChange(status string) {
	rentalStatusChanges.WithLabelValues(status).Inc()
}
