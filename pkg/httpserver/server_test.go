package httpserver_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// startServer runs srv in a goroutine and blocks until the start hook fires.
// The returned channel carries the Run result.
func startServer(t *testing.T, srv *httpserver.Server, started <-chan struct{}, handler http.Handler, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler) }()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startServer(t, srv, started, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), ctx)

	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	waitDone(t, done)
}

func TestManualShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(freeAddr(t)),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)

	done := startServer(t, srv, started, http.NewServeMux(), context.Background())

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown must be a no-op")
	waitDone(t, done)
}

func TestStartError(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(":invalid"))
	err := srv.Run(context.Background(), http.NewServeMux())
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(freeAddr(t)),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startServer(t, srv, started, http.NewServeMux(), ctx)

	err := srv.Run(context.Background(), http.NewServeMux())
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)

	cancel()
	waitDone(t, done)
}

func TestLifecycleHooks(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(freeAddr(t)),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
		httpserver.WithStopHook(func(*slog.Logger) { stopped.Store(true) }),
	)

	done := startServer(t, srv, started, http.NewServeMux(), context.Background())

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
	assert.True(t, stopped.Load())
}

func TestWithServerPrecedence(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	hs := &http.Server{ReadTimeout: time.Second}
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithServer(hs),
		httpserver.WithAddr(addr),
		httpserver.WithReadTimeout(5*time.Second),
		httpserver.WithWriteTimeout(2*time.Second),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)

	done := startServer(t, srv, started, http.NewServeMux(), context.Background())

	assert.Equal(t, addr, hs.Addr)
	assert.Equal(t, time.Second, hs.ReadTimeout, "value set on the server wins over the option")
	assert.Equal(t, 2*time.Second, hs.WriteTimeout)
	assert.NotNil(t, hs.Handler)

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	hs := &http.Server{}
	started := make(chan struct{})
	srv := httpserver.NewFromConfig(
		httpserver.Config{
			Addr:            addr,
			ReadTimeout:     time.Second,
			WriteTimeout:    2 * time.Second,
			IdleTimeout:     3 * time.Second,
			ShutdownTimeout: 50 * time.Millisecond,
		},
		httpserver.WithServer(hs),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)

	done := startServer(t, srv, started, nil, context.Background())

	assert.Equal(t, addr, hs.Addr)
	assert.Equal(t, time.Second, hs.ReadTimeout)
	assert.Equal(t, 2*time.Second, hs.WriteTimeout)
	assert.Equal(t, 3*time.Second, hs.IdleTimeout)

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"empty addr", func() { httpserver.WithAddr("") }},
		{"negative read timeout", func() { httpserver.WithReadTimeout(-time.Second) }},
		{"negative write timeout", func() { httpserver.WithWriteTimeout(-time.Second) }},
		{"negative idle timeout", func() { httpserver.WithIdleTimeout(-time.Second) }},
		{"negative shutdown timeout", func() { httpserver.WithShutdownTimeout(-time.Second) }},
		{"nil server", func() { httpserver.WithServer(nil) }},
		{"nil start hook", func() { httpserver.WithStartHook(nil) }},
		{"nil stop hook", func() { httpserver.WithStopHook(nil) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, tt.fn)
		})
	}

	assert.NotPanics(t, func() { httpserver.WithLogger(nil) })
}
