package webserver

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindle/internal/app"
	"lindle/internal/lindle"
	"lindle/internal/logger"
)

// newGateway wires a router to a real client talking to a fake Lindle API.
func newGateway(t *testing.T, logs *bytes.Buffer) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user":
			_, _ = io.WriteString(w, `{"_id":"u1","name":"Ada","email":"ada@example.com","image":"","count":10}`)
		case "/api/folders":
			_, _ = io.WriteString(w, `[{"_id":"f1","name":"Reading","public":true,"codename":"abc"}]`)
		case "/api/links":
			_, _ = io.WriteString(w, `[{"_id":"l1","name":"Go","url":"https://go.dev","folder":"f1"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	client, err := lindle.NewClient("test-key", lindle.WithBaseURL(upstream.URL))
	require.NoError(t, err)

	l := logger.NewWithWriter(logger.DEBUG, "json", logs)
	application := app.NewApp(app.WithClient(client), app.WithLogger(l))
	return NewRouter(application, l)
}

func TestRouterServesGatewayRoutes(t *testing.T) {
	var logs bytes.Buffer
	server := httptest.NewServer(newGateway(t, &logs))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/folders?links=true")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id":"f1","name":"Reading","publicFolder":true,
		"journeyLink":"https://lindle.click/abc","sharedEmails":[],
		"links":[{"id":"l1","name":"Go","url":"https://go.dev","folder":"f1"}]
	}]`, string(body))

	assert.Contains(t, logs.String(), `"uri":"/api/folders?links=true"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	var logs bytes.Buffer
	handler := newGateway(t, &logs)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, logs.String(), "404 Not Found: URL=/nope")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterMapsUpstreamFailure(t *testing.T) {
	var logs bytes.Buffer
	handler := newGateway(t, &logs)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sync", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"failed to fetch synced bookmarks: API error: 404 Not Found (status: 404)","status":404}`, rr.Body.String())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	// Reserve a free port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	l := logger.NewWithWriter(logger.ERROR, "json", io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, port, http.NotFoundHandler(), l)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

func TestLoggingMiddlewareKeepsFlusher(t *testing.T) {
	var logs bytes.Buffer
	l := logger.NewWithWriter(logger.INFO, "json", &logs)

	handler := LoggingMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must still implement http.Flusher")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "hello")
		flusher.Flush()
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, rr.Flushed)
	assert.Contains(t, logs.String(), `"status":201`)
	assert.Contains(t, logs.String(), `"size":5`)
}

func TestLoggingMiddlewareDefaultsToOK(t *testing.T) {
	var logs bytes.Buffer
	l := logger.NewWithWriter(logger.INFO, "json", &logs)

	handler := LoggingMiddleware(l)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/empty", nil))

	assert.Contains(t, logs.String(), `"status":200`)
	assert.Contains(t, logs.String(), `"size":0`)
}
