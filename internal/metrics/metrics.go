package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchTotal counts kernel selections by detected implementation and
	// the strategy "auto" resolved to
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "branchless_dispatch_total",
			Help: "Kernel dispatch decisions by CPU implementation and strategy",
		},
		[]string{"implementation", "strategy"},
	)

	// VectorWidthBits reports the vector width the lane count is derived from
	VectorWidthBits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "branchless_vector_width_bits",
			Help: "Vector register width used by the vectorized kernels (0 = scalar)",
		},
	)
)
