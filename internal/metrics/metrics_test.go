package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmonitor/internal/domain"
	"netmonitor/internal/metrics"
	"netmonitor/internal/screen"
)

func TestCollectorRecordsScreenActivity(t *testing.T) {
	t.Parallel()

	c, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.RefreshStarted(screen.TriggerTimer)
	c.RefreshStarted(screen.TriggerTimer)
	c.RefreshStarted(screen.TriggerPull)
	c.SampleReplaced(domain.Sample{Origin: domain.OriginSynthetic, RSSI: -80, RSRP: -100, RSRQ: -15})
	c.ExternalDropped()
	c.Exported(nil)
	c.Exported(errors.New("no clipboard"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RefreshesTotal.WithLabelValues("timer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RefreshesTotal.WithLabelValues("pull")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SamplesTotal.WithLabelValues("synthetic")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.HardwareMode))
	assert.Equal(t, -80.0, testutil.ToFloat64(c.CurrentRSSI))
	assert.Equal(t, -100.0, testutil.ToFloat64(c.CurrentRSRP))
	assert.Equal(t, -15.0, testutil.ToFloat64(c.CurrentRSRQ))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ExternalDroppedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ExportsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ExportsTotal.WithLabelValues("error")))

	c.SampleReplaced(domain.Sample{Origin: domain.OriginHardware, RSSI: -60})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HardwareMode))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SamplesTotal.WithLabelValues("hardware")))
}

func TestCollectorRejectsDoubleRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	assert.Error(t, err)
}

func TestHTTPMiddlewareAndHandler(t *testing.T) {
	t.Parallel()

	c, err := metrics.New(nil)
	require.NoError(t, err)

	handler := c.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/screen/refresh", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "409")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "netmonitor_http_requests_total")
}
