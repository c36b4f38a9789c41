package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/client"
)

// serve points the shared HTTP client at a test server for the test's lifetime
func serve(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client.Configure(srv.URL, 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
