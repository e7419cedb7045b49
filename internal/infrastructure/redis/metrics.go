package redis

import "github.com/prometheus/client_golang/prometheus"

const (
	resultHit      = "hit"
	resultMiss     = "miss"
	resultOK       = "ok"
	resultError    = "error"
	resultRejected = "rejected"
)

var (
	connectionAlive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_connection_alive",
			Help: "1 when the cache connection is live, 0 otherwise",
		},
	)

	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache facade operations by operation and result",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	prometheus.MustRegister(connectionAlive)
	prometheus.MustRegister(operationsTotal)
}

// GetOperationsTotal exposes the operation counter, mostly for tests.
func GetOperationsTotal() *prometheus.CounterVec {
	return operationsTotal
}
