package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register enqueues collectors from the init() of each metrics file in this
// package. Nothing touches the default registry until MustRegister runs, so
// tests can import the package freely.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister flushes the whole queue into the default Prometheus registry.
// main calls it once before the /metrics handler goes up; repeat calls are
// no-ops.
func MustRegister() {
	once.Do(func() {
		if len(collectors) > 0 {
			prometheus.MustRegister(collectors...)
		}
	})
}
