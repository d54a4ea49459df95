package pair

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(operationsMetric)
}

var operationsMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kvboard",
	Subsystem: "pairs",
	Name:      "operations_total",
	Help:      "Total pair operations by type",
}, []string{"operation"})
