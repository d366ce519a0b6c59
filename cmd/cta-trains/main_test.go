package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtures are shared with the cta package tests
var fixtures = map[string]string{
	"/stops.json":       "stops.json",
	"/ttarrivals.aspx":  "arrivals.json",
	"/ttfollow.aspx":    "follow.json",
	"/ttpositions.aspx": "locations.json",
}

func newServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path+"?"+r.URL.RawQuery)
		name, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join("..", "..", "cta", "testdata", name))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func writeConfig(t *testing.T, base string) string {
	t.Helper()
	cfg := fmt.Sprintf(`api:
  stopsURL: %[1]s/stops.json
  arrivalsURL: %[1]s/ttarrivals.aspx
  followURL: %[1]s/ttfollow.aspx
  positionsURL: %[1]s/ttpositions.aspx
transport:
  timeoutMS: 5000
  tlsPolicy: modern
logging:
  level: error
`, base)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"cta-trains"}, args...))
	return out.String(), err
}

func TestTour(t *testing.T) {
	srv, seen := newServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "--key", "k")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/stops.json?",
		"/ttarrivals.aspx?outputType=JSON&key=k&stpid=1",
		"/ttfollow.aspx?outputType=JSON&key=k&runnumber=726",
		"/ttpositions.aspx?outputType=JSON&key=k&rt=red,blue",
	}, *seen)

	for _, heading := range []string{"== stops (1)", "== arrivals (2)", "== follow 726 (2)", "== position 726 (1)", "== blue (1)", "== red (2)"} {
		assert.Contains(t, out, heading)
	}
}

func TestLocationsJSONWithFilter(t *testing.T) {
	srv, _ := newServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "--key", "k", "--format", "json", "--filter", `isApp == "1"`, "--routes", "red", "locations")
	require.NoError(t, err)

	var got map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	require.Len(t, got["red"], 1)
	assert.Equal(t, "804", got["red"][0]["rn"])
}

func TestMissingKey(t *testing.T) {
	srv, seen := newServer(t)
	cfg := writeConfig(t, srv.URL)
	t.Setenv("CTA_API_KEY", "")

	_, err := run(t, "--config", cfg, "arrivals", "--map-id", "40960")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
	assert.Empty(t, *seen)
}

func TestStopsNeedsNoKey(t *testing.T) {
	srv, seen := newServer(t)
	cfg := writeConfig(t, srv.URL)
	t.Setenv("CTA_API_KEY", "")

	out, err := run(t, "--config", cfg, "--format", "csv", "stops", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/stops.json?$limit=1"}, *seen)
	assert.Contains(t, out, "stop_id,direction_id")
}

func TestLocationsRoutes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default", args: []string{"locations"}, want: "rt=red,blue"},
		{name: "global flag", args: []string{"--routes", "g", "locations"}, want: "rt=g"},
		{name: "subcommand flag", args: []string{"locations", "--routes", "brn"}, want: "rt=brn"},
		{name: "subcommand wins", args: []string{"--routes", "g", "locations", "--routes", "brn,p"}, want: "rt=brn,p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, seen := newServer(t)
			cfg := writeConfig(t, srv.URL)

			_, err := run(t, append([]string{"--config", cfg, "--key", "k"}, tt.args...)...)
			require.NoError(t, err)
			require.Len(t, *seen, 1)
			assert.Equal(t, "/ttpositions.aspx?outputType=JSON&key=k&"+tt.want, (*seen)[0])
		})
	}
}

func TestTourJSONIsOneDocument(t *testing.T) {
	srv, _ := newServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "--key", "k", "--format", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var doc map[string]json.RawMessage
	require.NoError(t, dec.Decode(&doc))
	assert.False(t, dec.More(), "expected a single JSON document")

	for _, key := range []string{"stops", "arrivals", "follow", "position", "locations"} {
		assert.Contains(t, doc, key)
	}
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), `{"stops":[`))

	var locations map[string][]map[string]any
	require.NoError(t, json.Unmarshal(doc["locations"], &locations))
	assert.Len(t, locations["red"], 2)
	assert.Len(t, locations["blue"], 1)
}
