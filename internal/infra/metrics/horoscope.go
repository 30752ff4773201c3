package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	horoscopeBuildMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "horoscope_build_latency_ms",
			Help:    "End-to-end daily horoscope build latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 20000},
		},
	)

	horoscopeSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horoscope_source_fetches_total",
			Help: "Per-source fetch results (source, success).",
		},
		[]string{"source", "success"},
	)

	horoscopeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horoscope_cache_total",
			Help: "Horoscope cache hits and misses.",
		},
		[]string{"result"},
	)

	aiForecastTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horoscope_ai_forecasts_total",
			Help: "AI personal forecast attempts by provider and success.",
		},
		[]string{"provider", "success"},
	)
)

func init() {
	register(horoscopeBuildMs, horoscopeSourceTotal, horoscopeCacheTotal, aiForecastTotal)
}

func ObserveHoroscopeBuildMs(ms float64) { horoscopeBuildMs.Observe(ms) }

func IncHoroscopeSource(source string, ok bool) {
	horoscopeSourceTotal.WithLabelValues(source, boolLabel(ok)).Inc()
}

func IncHoroscopeCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	horoscopeCacheTotal.WithLabelValues(result).Inc()
}

func IncAIForecast(provider string, ok bool) {
	aiForecastTotal.WithLabelValues(provider, boolLabel(ok)).Inc()
}

func boolLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
