package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"netmonitor/internal/logging"
	"netmonitor/internal/screen"
)

const screenEvent = "screen"

// handleEvents streams every view change as a server-sent event. The current
// view is sent first so a client can render immediately.
func (h *handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	views, cancel := h.screen.Subscribe()
	defer cancel()

	current, err := h.screen.Snapshot(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	logger := requestLogger(r, h.logger)
	if err := writeEvent(w, current); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	lastSeq := current.Seq
	for {
		select {
		case <-r.Context().Done():
			return
		case view, ok := <-views:
			if !ok {
				logger.Debug("screen closed, ending event stream")
				return
			}
			if view.Seq < lastSeq {
				continue
			}
			lastSeq = view.Seq
			if err := writeEvent(w, view); err != nil {
				logger.Debug("event stream write failed", logging.AttachError(err)...)
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, view screen.View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", view.Seq, screenEvent, data)
	return err
}
