package cta

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testKey = "test-key"
	// 2015-04-30T20:23:53 in America/Chicago
	fixtureQueryTime float64 = 1430443433
)

// upstream is a canned Train Tracker / open-data server
type upstream struct {
	srv *httptest.Server

	mu      sync.Mutex
	status  int
	body    []byte
	queries []string
}

func newUpstream(t *testing.T, fixture string) *upstream {
	t.Helper()
	u := &upstream{status: http.StatusOK, body: readFixture(t, fixture)}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		u.queries = append(u.queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		_, _ = w.Write(u.body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

// respond swaps the canned response for subsequent requests
func (u *upstream) respond(t *testing.T, status int, fixture string) {
	t.Helper()
	body := readFixture(t, fixture)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.body = body
}

func (u *upstream) url(path string) string {
	return u.srv.URL + path
}

func (u *upstream) hits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.queries)
}

func (u *upstream) lastQuery() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.queries) == 0 {
		return ""
	}
	return u.queries[len(u.queries)-1]
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}
