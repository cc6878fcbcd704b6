package server_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/handler"
	"github.com/osse101/ChronoFarm_Go/internal/server"
	"github.com/osse101/ChronoFarm_Go/internal/sse"
	"github.com/osse101/ChronoFarm_Go/internal/testing/gametest"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
	"github.com/osse101/ChronoFarm_Go/internal/worker"
)

const apiKey = "test-key"

func newTestServer(t *testing.T) (*httptest.Server, *sse.Hub) {
	t.Helper()
	f := gametest.New(t)
	cfg := game.DefaultConfig()
	cfg.GridSize = 8
	sess, err := game.New(f.Store, f.Bus, f.Catalog, f.Clock, utils.FixedRandomizer{}, nil, cfg)
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	bridge := sse.NewBridge(hub)
	bridge.Register(f.Bus)

	jw := worker.NewJourneyWorker(sess)
	t.Cleanup(func() { _ = jw.Shutdown(context.Background()) })

	router := server.NewRouter(server.Options{APIKey: apiKey}, server.Dependencies{
		Game:     sess,
		Journeys: jw,
		Hub:      hub,
		Ready:    []handler.HealthChecker{handler.HealthCheckFunc(func(context.Context) error { return nil })},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func send(t *testing.T, method, url, body, key string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if key != "" {
		req.Header.Set(server.HeaderAPIKey, key)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Routes(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		key    string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"version", http.MethodGet, "/version", "", "", http.StatusOK},
		{"plots", http.MethodGet, "/api/v1/plots", "", "", http.StatusOK},
		{"eras", http.MethodGet, "/api/v1/eras", "", "", http.StatusOK},
		{"achievements", http.MethodGet, "/api/v1/achievements", "", "", http.StatusOK},
		{"plant without key", http.MethodPost, "/api/v1/plots/0/plant", `{"species":"prehistoric-moss"}`, "", http.StatusUnauthorized},
		{"plant with key", http.MethodPost, "/api/v1/plots/1/plant", `{"species":"prehistoric-moss"}`, apiKey, http.StatusCreated},
		{"save without persistence", http.MethodPost, "/api/v1/save", "", apiKey, http.StatusNotImplemented},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := send(t, tt.method, srv.URL+tt.path, tt.body, tt.key)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, server.HeaderValueNoSniff, resp.Header.Get(server.HeaderContentType))
		})
	}
}

func TestRouter_EventStream(t *testing.T) {
	srv, hub := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?topics=plant:*", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	send(t, http.MethodPost, srv.URL+"/api/v1/plots/0/plant", `{"species":"prehistoric-moss"}`, apiKey)

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if scanner.Text() == "event: plant:planted" {
			return
		}
	}
	t.Fatalf("plant:planted never streamed: %v", scanner.Err())
}
