// Package metrics provides a prometheus-backed implementation of
// flow.Recorder, additive and optional per SPEC_FULL's domain-stack
// section: nothing in the core algebra requires it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// PromRecorder implements flow.Recorder using three prometheus
// collectors, registered against reg (pass prometheus.DefaultRegisterer
// for the global registry).
type PromRecorder struct {
	queueDepth *prometheus.GaugeVec
	bufferLen  *prometheus.GaugeVec
	dropped    *prometheus.CounterVec
}

// NewPromRecorder creates and registers the collectors backing a
// PromRecorder against reg.
func NewPromRecorder(reg prometheus.Registerer) *PromRecorder {
	r := &PromRecorder{
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "flow",
			Name:      "queue_depth",
			Help:      "Current number of buffered values in a flow.Queue.",
		}, []string{"queue"}),
		bufferLen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "flow",
			Name:      "buffer_length",
			Help:      "Current number of buffered values in a flow.Buffer combinator.",
		}, []string{"buffer"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flow",
			Name:      "dropped_total",
			Help:      "Total number of values dropped by a lossy operation.",
		}, []string{"source"}),
	}

	reg.MustRegister(r.queueDepth, r.bufferLen, r.dropped)
	return r
}

func (r *PromRecorder) ObserveQueueDepth(depth int) {
	r.queueDepth.WithLabelValues("default").Set(float64(depth))
}

func (r *PromRecorder) ObserveBufferLen(name string, length int) {
	r.bufferLen.WithLabelValues(name).Set(float64(length))
}

func (r *PromRecorder) IncDropped(name string) {
	r.dropped.WithLabelValues(name).Inc()
}
