package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler returns an HTTP handler for SSE connections. The optional
// "topics" query parameter is a comma separated list of topic patterns.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		var patterns []string
		if filterParam := r.URL.Query().Get("topics"); filterParam != "" {
			patterns = strings.Split(filterParam, ",")
		}

		client := hub.Register(patterns)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", client.Patterns,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(ev Event) bool {
			msg, err := FormatSSEMessage(ev)
			if err != nil {
				slog.Error(LogMsgWriteError, "type", ev.Type, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().UnixMilli(),
			Payload: map[string]any{
				"client_id": client.ID,
				"filters":   client.Patterns,
			},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}
				if !write(ev) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().UnixMilli()}) {
					return
				}
			}
		}
	}
}
