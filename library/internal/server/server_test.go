package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helcv/Valcon-Internship-Library-Project/library/config"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStop(t *testing.T) {
	t.Parallel()
	srv := NewServer(config.HTTPServer{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second}, http.NotFoundHandler())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run()
	}()
	// Shutdown may win the race with ListenAndServe; both paths end in a nil Run.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-done)
}

func TestNewServer_Handler(t *testing.T) {
	t.Parallel()
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := NewServer(config.HTTPServer{Host: "localhost", Port: "8080"}, h)
	require.Equal(t, "localhost:8080", srv.httpServer.Addr)

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusTeapot, w.Code)
}
