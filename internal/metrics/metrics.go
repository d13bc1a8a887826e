package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"netmonitor/internal/domain"
	"netmonitor/internal/screen"
)

const namespace = "netmonitor"

// Collector holds the application's Prometheus collectors.
type Collector struct {
	registry *prometheus.Registry

	RefreshesTotal       *prometheus.CounterVec
	SamplesTotal         *prometheus.CounterVec
	ExternalDroppedTotal prometheus.Counter
	ExportsTotal         *prometheus.CounterVec
	HardwareMode         prometheus.Gauge
	CurrentRSSI          prometheus.Gauge
	CurrentRSRP          prometheus.Gauge
	CurrentRSRQ          prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry.
func New(reg *prometheus.Registry) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: reg,
		RefreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Screen refreshes started, by trigger.",
		}, []string{"trigger"}),
		SamplesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Samples that became current, by origin.",
		}, []string{"origin"}),
		ExternalDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_dropped_total",
			Help:      "External samples dropped because the screen was locked.",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Clipboard exports, by result.",
		}, []string{"result"}),
		HardwareMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hardware_mode",
			Help:      "1 once an external sample has been received.",
		}),
		CurrentRSSI: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_rssi_dbm",
			Help:      "RSSI of the current sample.",
		}),
		CurrentRSRP: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_rsrp_dbm",
			Help:      "RSRP of the current sample.",
		}),
		CurrentRSRQ: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_rsrq_db",
			Help:      "RSRQ of the current sample.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method and status code.",
		}, []string{"method", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	collectors := []prometheus.Collector{
		c.RefreshesTotal,
		c.SamplesTotal,
		c.ExternalDroppedTotal,
		c.ExportsTotal,
		c.HardwareMode,
		c.CurrentRSSI,
		c.CurrentRSRP,
		c.CurrentRSRQ,
		c.HTTPRequestsTotal,
		c.HTTPRequestDuration,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Registry returns the registry the collectors live in, so other
// components (the gRPC server metrics) can share it.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler exposes the registered collectors.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RefreshStarted(trigger screen.Trigger) {
	c.RefreshesTotal.WithLabelValues(string(trigger)).Inc()
}

func (c *Collector) SampleReplaced(sample domain.Sample) {
	c.SamplesTotal.WithLabelValues(string(sample.Origin)).Inc()
	if sample.IsHardware() {
		c.HardwareMode.Set(1)
	}
	c.CurrentRSSI.Set(float64(sample.RSSI))
	c.CurrentRSRP.Set(float64(sample.RSRP))
	c.CurrentRSRQ.Set(float64(sample.RSRQ))
}

func (c *Collector) ExternalDropped() {
	c.ExternalDroppedTotal.Inc()
}

func (c *Collector) Exported(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.ExportsTotal.WithLabelValues(result).Inc()
}

// HTTPMiddleware instruments handlers with request counts and latency.
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			c.HTTPRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
			c.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(recorder.status)).Inc()
		}()

		next.ServeHTTP(recorder, r)
	})
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps server-sent event streams working through the middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

var _ screen.Recorder = (*Collector)(nil)
