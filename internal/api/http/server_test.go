package httpapi_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "netmonitor/internal/api/http"
	"netmonitor/internal/auth"
	"netmonitor/internal/clipboard"
	"netmonitor/internal/generator"
	"netmonitor/internal/metrics"
	"netmonitor/internal/screen"
)

func newScreen(t *testing.T, opts ...screen.Option) *screen.Controller {
	t.Helper()

	ctrl := screen.New(generator.NewRandomSource(generator.Config{Seed: 7}), screen.Config{
		RefreshInterval: time.Hour,
		RefreshDelay:    5 * time.Millisecond,
		NoticeDuration:  20 * time.Millisecond,
	}, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-ctrl.Done()
	})
	return ctrl
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) screen.View {
	t.Helper()

	var view screen.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	return view
}

func TestLockedScreenHidesSample(t *testing.T) {
	t.Parallel()

	srv := httpapi.NewServer(newScreen(t))

	rec := do(t, srv, http.MethodGet, "/api/v1/screen", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))

	view := decodeView(t, rec)
	assert.Equal(t, "locked", view.Mode)
	assert.Equal(t, screen.StatusLocked, view.Status)
	assert.Nil(t, view.Sample)

	for _, path := range []string{"/api/v1/screen/refresh", "/api/v1/screen/pull", "/api/v1/screen/export"} {
		rec := do(t, srv, http.MethodPost, path, "")
		assert.Equal(t, http.StatusConflict, rec.Code, path)

		var body struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, http.StatusConflict, body.Code)
	}
}

func TestGrantPullAndExport(t *testing.T) {
	t.Parallel()

	cb := clipboard.NewMemory()
	srv := httpapi.NewServer(newScreen(t, screen.WithClipboard(cb)))

	rec := do(t, srv, http.MethodPost, "/api/v1/screen/permission", "")
	require.Equal(t, http.StatusOK, rec.Code)
	granted := decodeView(t, rec)
	require.NotNil(t, granted.Sample)
	assert.Equal(t, screen.StatusLive, granted.Status)
	assert.Equal(t, "603", granted.Sample.MCC)

	rec = do(t, srv, http.MethodPost, "/api/v1/screen/pull", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pulled := decodeView(t, rec)
	assert.False(t, pulled.Refreshing)
	assert.Greater(t, pulled.Seq, granted.Seq)

	rec = do(t, srv, http.MethodPost, "/api/v1/screen/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var exported struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exported))
	assert.Contains(t, exported.Text, `"mcc": "603"`)

	copied, err := cb.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, exported.Text, copied)
}

func TestTelemetryIngest(t *testing.T) {
	t.Parallel()

	srv := httpapi.NewServer(newScreen(t))

	payload := `{"operator":"Bridge","technology":"5G (NR)","cid":"1234","lac":"77","rssi":-60}`
	rec := do(t, srv, http.MethodPost, "/api/v1/telemetry", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/screen/permission", "").Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/telemetry", payload)
	require.Equal(t, http.StatusAccepted, rec.Code)
	view := decodeView(t, rec)
	require.NotNil(t, view.Sample)
	assert.True(t, view.HardwareMode)
	assert.Equal(t, screen.StatusHardware, view.Status)
	assert.Equal(t, "Bridge", view.Sample.Operator)
	assert.Equal(t, "1234", view.Sample.CellID)
	assert.Equal(t, "77", view.Sample.AreaCode)
	assert.Equal(t, -60, view.Sample.RSSI)
	assert.Equal(t, 90, view.SignalPercent)

	for _, body := range []string{`{"operator":`, `[1,2]`, ``} {
		rec := do(t, srv, http.MethodPost, "/api/v1/telemetry", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestTelemetryRequiresToken(t *testing.T) {
	t.Parallel()

	const secret = "bridge-secret"
	ctrl := newScreen(t)
	_, err := ctrl.Grant(context.Background())
	require.NoError(t, err)

	srv := httpapi.NewServer(ctrl, httpapi.WithVerifier(auth.NewVerifier(secret)))

	rec := do(t, srv, http.MethodPost, "/api/v1/telemetry", `{"operator":"Bridge"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "bridge-1",
		"scope": auth.ScopePush,
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	rec = do(t, srv, http.MethodPost, "/api/v1/telemetry", `{"operator":"Bridge"}`, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	collector, err := metrics.New(nil)
	require.NoError(t, err)

	ctrl := newScreen(t, screen.WithRecorder(collector))
	srv := httpapi.NewServer(ctrl, httpapi.WithMetrics(collector.Handler(), collector.HTTPMiddleware))

	rec := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "dev", health.Version)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/screen/permission", "").Code)

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "netmonitor_http_requests_total")
}

func TestEventStream(t *testing.T) {
	t.Parallel()

	ctrl := newScreen(t)
	ts := httptest.NewServer(httpapi.NewServer(ctrl, httpapi.WithHeartbeat(10*time.Millisecond)))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/screen/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	first := readEvent(t, reader)
	assert.Equal(t, "locked", first.Mode)

	_, err = ctrl.Grant(context.Background())
	require.NoError(t, err)

	next := readEvent(t, reader)
	assert.Equal(t, "active", next.Mode)
	require.NotNil(t, next.Sample)
}

// readEvent returns the next "screen" event, skipping heartbeats.
func readEvent(t *testing.T, r *bufio.Reader) screen.View {
	t.Helper()

	var event string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: ") && event == "screen":
			var view screen.View
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &view))
			return view
		}
	}
}
