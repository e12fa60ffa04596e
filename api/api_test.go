package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zagvozdeen/coffeeshop/config"
	"github.com/zagvozdeen/coffeeshop/internal/converter"
	"go.uber.org/goleak"
)

func newTestApplication(t *testing.T, cfg config.Config, dist string) *Application {
	t.Helper()
	a := New(cfg, dist)
	a.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	return a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestEnvJSON(t *testing.T) {
	cfg := config.Production()
	a := newTestApplication(t, cfg, t.TempDir())

	rr := get(t, a.Handler(), "/env.json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got config.Config
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, cfg, got)
}

func TestVersionedFiles(t *testing.T) {
	dist := t.TempDir()
	cfg := config.Development()
	require.NoError(t, converter.New(cfg, dist).Run())
	a := newTestApplication(t, cfg, dist)

	rr := get(t, a.Handler(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Coffee shop development environment")

	rr = get(t, a.Handler(), "/environment.ts")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "export const environment = {")
}

func TestVersionedFilesMissing(t *testing.T) {
	a := newTestApplication(t, config.Development(), t.TempDir())
	assert.Equal(t, http.StatusNotFound, get(t, a.Handler(), "/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, a.Handler(), "/environment.ts").Code)
}

func TestVersionedFilesCorruptVersion(t *testing.T) {
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, converter.ReportFile), []byte("outside"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, converter.VersionFile), []byte(".."), 0o644))
	a := newTestApplication(t, config.Development(), dist)

	rr := get(t, a.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "outside")
}

func TestCheckGenerated(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, converter.New(config.Development(), dist).Run())

	tests := []struct {
		name string
		cfg  config.Config
		warn bool
	}{
		{name: "same environment", cfg: config.Development(), warn: false},
		{name: "other environment", cfg: config.Production(), warn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := New(tt.cfg, dist)
			a.logger = slog.New(slog.NewJSONHandler(&buf, nil))
			a.checkGenerated()
			if tt.warn {
				assert.Contains(t, buf.String(), "Generated environment differs from served environment")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestAssets(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "logo.svg"), []byte("<svg/>"), 0o644))
	a := newTestApplication(t, config.Development(), dist)

	rr := get(t, a.Handler(), "/assets/logo.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<svg/>", rr.Body.String())
}

func TestHealthz(t *testing.T) {
	a := newTestApplication(t, config.Development(), t.TempDir())
	rr := get(t, a.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestMetricsCountsEnvRequests(t *testing.T) {
	a := newTestApplication(t, config.Development(), t.TempDir())
	get(t, a.Handler(), "/env.json")
	rr := get(t, a.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `coffeeshop_env_requests_total{document="env.json"}`)
}

func TestServeShutdown_NoGoroutineLeak(t *testing.T) {
	a := newTestApplication(t, config.Development(), t.TempDir())
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Serve(ctx, ln)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve() didn't return after cancel")
	}
}
