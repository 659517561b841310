package sheets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheets_upstream_retries_total",
			Help: "Retries against the spreadsheet API after transient failures",
		},
		[]string{"op"},
	)

	upstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheets_upstream_failures_total",
			Help: "Spreadsheet API operations that failed, by outcome",
		},
		[]string{"op", "outcome"},
	)
)

func observeRetry(op string) {
	upstreamRetries.WithLabelValues(op).Inc()
}

func observeFailure(op, outcome string) {
	upstreamFailures.WithLabelValues(op, outcome).Inc()
}
