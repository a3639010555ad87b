package bufpool

import "github.com/prometheus/client_golang/prometheus"

// metrics instruments a Pool's rent/return/allocate traffic, mirroring
// the counter-vec-per-operation shape the dead-letter subsystem uses
// elsewhere in this stack. Registration is lazy and nil-safe: a Pool
// built without a Registerer records nothing.
type metrics struct {
	rents       prometheus.Counter
	returns     prometheus.Counter
	allocations prometheus.Counter
}

// NewMetrics builds pool instrumentation and registers it against reg. reg
// may be nil, in which case the returned metrics are inert.
func NewMetrics(reg prometheus.Registerer) *metrics {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "envelope",
		Subsystem: "bufpool",
		Name:      "operations_total",
		Help:      "Count of buffer pool operations by kind.",
	}, []string{"op"})

	if reg != nil {
		reg.MustRegister(vec)
	}

	return &metrics{
		rents:       vec.WithLabelValues("rent"),
		returns:     vec.WithLabelValues("return"),
		allocations: vec.WithLabelValues("allocate"),
	}
}

func (m *metrics) observeRent() {
	if m == nil {
		return
	}
	m.rents.Inc()
}

func (m *metrics) observeReturn() {
	if m == nil {
		return
	}
	m.returns.Inc()
}

func (m *metrics) observeAllocate() {
	if m == nil {
		return
	}
	m.allocations.Inc()
}
