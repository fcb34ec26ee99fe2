// Package monitoring exposes Prometheus metrics for the box office.
// The collectors are registered on the default registry via promauto
// and served by the /metrics endpoint.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boxoffice_tickets_sold_total",
			Help: "Total number of tickets sold",
		},
	)

	salesCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boxoffice_sales_total",
			Help: "Total number of committed sale transactions",
		},
	)

	salesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_sales_rejected_total",
			Help: "Total number of rejected sale attempts per reason",
		},
		[]string{"reason"},
	)

	showingsScheduled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boxoffice_showings_scheduled",
			Help: "Current number of showings in the catalog",
		},
	)
)

// RecordSale counts one committed sale of the given size.
func RecordSale(tickets int) {
	salesCommitted.Inc()
	ticketsSold.Add(float64(tickets))
}

// RecordSaleRejected counts one rejected sale attempt.  The reason
// label should be a short stable identifier such as "seat_already_sold".
func RecordSaleRejected(reason string) {
	salesRejected.WithLabelValues(reason).Inc()
}

// SetShowingsScheduled updates the catalog size gauge.
func SetShowingsScheduled(n int) {
	showingsScheduled.Set(float64(n))
}
