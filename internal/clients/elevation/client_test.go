package elevation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
)

func servePath(t *testing.T, elevations []float64) (*Client, *int) {
	t.Helper()
	var requestedPoints int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/lookup", r.URL.Path)

		var request lookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		requestedPoints = len(request.Locations)

		results := make([]map[string]float64, len(request.Locations))
		for i := range request.Locations {
			results[i] = map[string]float64{"elevation": elevations[i%len(elevations)]}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"results": results}))
	}))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, zap.NewNop()), &requestedPoints
}

func pathOfLength(n int) []geo.Point {
	path := make([]geo.Point, n)
	for i := range path {
		path[i] = geo.Point{Latitude: 39.95 + float64(i)*0.0001, Longitude: -75.16}
	}
	return path
}

func TestTotalAscent_SumsPositiveDeltasOnly(t *testing.T) {
	// 10 -> 25 climbs 15, 25 -> 5 descends, 5 -> 30 climbs 25
	client, _ := servePath(t, []float64{10, 25, 5, 30})

	gain, err := client.TotalAscent(context.Background(), pathOfLength(4))
	require.NoError(t, err)
	assert.InDelta(t, 40.0, gain, 0.001)
}

func TestTotalAscent_FlatRoute(t *testing.T) {
	client, _ := servePath(t, []float64{12, 12, 12})

	gain, err := client.TotalAscent(context.Background(), pathOfLength(3))
	require.NoError(t, err)
	assert.Zero(t, gain)
}

func TestTotalAscent_SamplesLongPaths(t *testing.T) {
	client, requested := servePath(t, []float64{10, 20})

	_, err := client.TotalAscent(context.Background(), pathOfLength(250))
	require.NoError(t, err)

	// stride = ceil(250/100) = 3, so 84 points go over the wire
	assert.Equal(t, 84, *requested)
	assert.LessOrEqual(t, *requested, maxLookupPoints)
}

func TestTotalAscent_ShortPathSkipsLookup(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"}, zap.NewNop())

	gain, err := client.TotalAscent(context.Background(), pathOfLength(1))
	require.NoError(t, err)
	assert.Zero(t, gain)
}

func TestTotalAscent_ServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.TotalAscent(context.Background(), pathOfLength(3))
	assert.Error(t, err)
}

func TestTotalAscent_ResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"elevation":10}]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.TotalAscent(context.Background(), pathOfLength(3))
	assert.Error(t, err)
}

func TestSamplePath(t *testing.T) {
	assert.Len(t, samplePath(pathOfLength(100), 100), 100)
	assert.Len(t, samplePath(pathOfLength(101), 100), 51) // stride 2
	assert.Len(t, samplePath(pathOfLength(300), 100), 100)

	sampled := samplePath(pathOfLength(300), 100)
	assert.Equal(t, pathOfLength(300)[0], sampled[0])
}
