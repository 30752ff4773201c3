package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	matrixCalcTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matrix_calculations_total",
			Help: "Matrix calculations by outcome (ok|parse_error).",
		},
		[]string{"outcome"},
	)

	reportBuildTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matrix_reports_total",
			Help: "Full interpretation reports assembled.",
		},
	)
)

func init() { register(matrixCalcTotal, reportBuildTotal) }

func IncMatrixCalc(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "parse_error"
	}
	matrixCalcTotal.WithLabelValues(outcome).Inc()
}

func IncReportBuilt() { reportBuildTotal.Inc() }
