package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/painelfin/painelgo/config"
)

// newTestClient points a full client at a stub backend. CacheEnabled stays
// off so tests always hit the handler.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfigWithRoot(t.TempDir())
	cfg.BackendURL = srv.URL
	cfg.CacheEnabled = false
	return New(cfg), srv
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("write response: %v", err)
	}
}

func TestAPIBaseConvention(t *testing.T) {
	cases := []struct {
		origin string
		want   string
	}{
		{"http://localhost:5001", "http://localhost:5001/api"},
		{"http://localhost:5001/", "http://localhost:5001/api"},
		{"http://localhost:5001/api", "http://localhost:5001/api"},
		{"http://backend.internal/api/", "http://backend.internal/api"},
	}
	for _, tc := range cases {
		if got := apiBase(tc.origin); got != tc.want {
			t.Errorf("apiBase(%q) = %q, want %q", tc.origin, got, tc.want)
		}
	}
}
