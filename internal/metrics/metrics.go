// Package metrics registers the Prometheus collectors exported by the validation engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "asset_validations_total", Help: "Validation runs by selection panel and final state"},
		[]string{"selection", "final_state"},
	)
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "asset_validation_transitions_total", Help: "State transitions taken by the validation runner"},
		[]string{"from", "to"},
	)
	ChainQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "chain_queries_total", Help: "Chain reads issued while validating assets"},
		[]string{"method", "result"},
	)
	GuardSkipsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "asset_validation_guard_skips_total", Help: "Start calls skipped because the input signature was unchanged"},
	)
)

func init() {
	prometheus.MustRegister(ValidationsTotal, TransitionsTotal, ChainQueriesTotal, GuardSkipsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
