// Package metrics provides Prometheus instrumentation for the fund engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DistributionsTotal counts profit/loss distributions applied to the ledger.
	DistributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fund_distributions_total",
		Help: "Total profit/loss distributions applied across members",
	})

	// ReversalsTotal counts distribution reversals (bet edits and deletions).
	ReversalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fund_reversals_total",
		Help: "Total distribution reversals applied",
	})

	// ReconciliationsTotal counts full earnings rebuilds.
	ReconciliationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fund_reconciliations_total",
		Help: "Total full earnings reconciliations",
	})

	// PayoutsRejectedTotal counts payouts rejected for insufficient balance.
	PayoutsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fund_payouts_rejected_total",
		Help: "Payouts rejected because they exceeded the member balance",
	})
)

// Handler exposes the default registry for mounting on the router.
func Handler() http.Handler {
	return promhttp.Handler()
}
