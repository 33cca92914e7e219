package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generated_excel.xlsx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func do(t *testing.T, h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeSheet(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "PK-fake-xlsx")})

	rec := do(t, s.Handler(), http.MethodGet, SheetRoute, map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PK-fake-xlsx", rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "generated_excel.xlsx")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues(outcomeOK)))
}

func TestServeSheetHead(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "PK-fake-xlsx")})

	rec := do(t, s.Handler(), http.MethodHead, SheetRoute, map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "12", rec.Header().Get("Content-Length"))
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	missing := New(Config{SheetPath: filepath.Join(t.TempDir(), "absent.xlsx")})
	assert.Equal(t, http.StatusNotFound, do(t, missing.Handler(), http.MethodHead, SheetRoute, nil).Code)
}

func TestServeSheetIgnoresQuery(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "bytes")})
	rec := do(t, s.Handler(), http.MethodGet, SheetRoute+"?sheet=2&x=y", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bytes", rec.Body.String())
}

func TestServeSheetMissing(t *testing.T) {
	s := New(Config{SheetPath: filepath.Join(t.TempDir(), "absent.xlsx")})
	rec := do(t, s.Handler(), http.MethodGet, SheetRoute, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues(outcomeMissing)))
}

func TestServeSheetDirectory(t *testing.T) {
	s := New(Config{SheetPath: t.TempDir()})
	rec := do(t, s.Handler(), http.MethodGet, SheetRoute, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreflightAllowsAnyOrigin(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "x")})
	rec := do(t, s.Handler(), http.MethodOptions, SheetRoute, map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOtherRoutes(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "x")})

	assert.Equal(t, http.StatusNotFound, do(t, s.Handler(), http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s.Handler(), http.MethodPost, SheetRoute, nil).Code)

	do(t, s.Handler(), http.MethodGet, SheetRoute, nil)
	rec := do(t, s.Handler(), http.MethodGet, MetricsRoute, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `siftly_sheet_requests_total{outcome="ok"} 1`)
}

func TestServeUntilCanceled(t *testing.T) {
	s := New(Config{SheetPath: sheetFile(t, "payload")})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + SheetRoute)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", displayURL(&net.TCPAddr{IP: net.IPv6unspecified, Port: 5000}))
	assert.Equal(t, "http://localhost:8080", displayURL(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}))
	assert.True(t, strings.HasPrefix(displayURL(&net.TCPAddr{IP: net.IPv4(10, 1, 2, 3), Port: 1}), "http://10.1.2.3"))
}
