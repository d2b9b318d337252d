// Package metrics publishes model-loading metrics through Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/skymodel/internal/ctxlog"
)

const namespace = "skymodel"

// Results reported by Observe.
const (
	ResultSuccess       = "success"
	ResultIOError       = "io_error"
	ResultDocumentError = "document_error"
	ResultSyntaxError   = "syntax_error"
	ResultLinkError     = "link_error"
)

// Loader records model loads. A nil *Loader discards everything.
type Loader struct {
	loads      *prometheus.CounterVec
	duration   prometheus.Histogram
	parameters prometheus.Gauge
	links      prometheus.Gauge
}

// NewLoader creates the collectors and registers them with reg.
func NewLoader(reg prometheus.Registerer) (*Loader, error) {
	l := &Loader{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_loads_total",
			Help:      "Model loads by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_load_duration_seconds",
			Help:      "Time spent fetching, decoding and parsing a model.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		parameters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_parameters",
			Help:      "Parameters in the last model loaded successfully.",
		}),
		links: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_links",
			Help:      "Linked model parameters in the last model loaded successfully. Links inside laws are not counted.",
		}),
	}
	for _, c := range []prometheus.Collector{l.loads, l.duration, l.parameters, l.links} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Observe records the outcome of one load. parameters and links are only
// published for successful loads.
func (l *Loader) Observe(ctx context.Context, result string, duration time.Duration, parameters, links int) {
	if l == nil {
		return
	}
	ctxlog.FromContext(ctx).Debug("Recording model load.", "result", result, "duration", duration, "parameters", parameters, "links", links)
	l.loads.WithLabelValues(result).Inc()
	l.duration.Observe(duration.Seconds())
	if result == ResultSuccess {
		l.parameters.Set(float64(parameters))
		l.links.Set(float64(links))
	}
}
