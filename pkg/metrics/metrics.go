package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crowdfund", Name: "escrow_operations_total", Help: "Escrow state transitions by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	EscrowedAmount = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crowdfund", Name: "escrow_value_moved_total", Help: "Value moved through escrow by direction (in, out)."},
		[]string{"direction"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Operations)
	reg.MustRegister(EscrowedAmount)
}
