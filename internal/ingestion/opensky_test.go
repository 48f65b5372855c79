package ingestion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func TestFetchAllStates(t *testing.T) {
	payload := map[string]interface{}{
		"time": 1700000000,
		"states": [][]interface{}{
			{
				"abc123",        // 0  icao24
				"UAL123  ",      // 1  callsign
				"United States", // 2  origin_country
				0,               // 3  time_position
				0,               // 4  last_contact
				-122.3,          // 5  longitude
				47.6,            // 6  latitude
				10000,           // 7  baro_altitude
				false,           // 8  on_ground
				250.5,           // 9  velocity
				90,              // 10 true_track
				0,               // 11 vertical_rate
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/states/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	states, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)

	f := states[0]
	assert.Equal(t, "abc123", f.ICAO24)
	assert.Equal(t, "UAL123", f.Callsign) // trimmed
	assert.Equal(t, "United States", f.OriginCountry)
	require.NotNil(t, f.Latitude)
	require.NotNil(t, f.Longitude)
	assert.InDelta(t, 47.6, *f.Latitude, 0.01)
	assert.InDelta(t, -122.3, *f.Longitude, 0.01)
	require.NotNil(t, f.Velocity)
	assert.InDelta(t, 250.5, *f.Velocity, 0.01)
	require.NotNil(t, f.BaroAltitude)
	assert.InDelta(t, 10000, *f.BaroAltitude, 0.01)
	assert.False(t, f.OnGround)
}

func TestFetchAllStatesMissingStates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"time": 1700000000})
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	states, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestFetchAllStatesNullStates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"time":1700000000,"states":null}`))
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	states, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestFetchAllStatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream maintenance window"))
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	_, err := client.FetchAllStates(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Contains(t, string(se.Body), "maintenance window")
	assert.Contains(t, err.Error(), "unexpected status: 503")
}

func TestFetchWithRetryParseErrorRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.Write([]byte("{not json"))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"time": 1700000000, "states": [][]interface{}{}})
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	_, err := client.FetchStatesWithRetry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestFetchWithRetryStatusErrorNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	_, err := client.FetchStatesWithRetry(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, 1, attempts)
}

func TestClientWithCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"time": 0, "states": [][]interface{}{}})
	}))
	defer srv.Close()

	client := NewClient(
		WithBaseURLOption(srv.URL),
		WithCredentials("user", "pass"),
	)
	_, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)
	assert.Contains(t, gotAuth, "Basic")
}

func TestClientWithBearerToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-abc",
			"expires_in":   3600,
			"token_type":   "Bearer",
		})
	}))
	defer tokenSrv.Close()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"time": 0, "states": [][]interface{}{}})
	}))
	defer srv.Close()

	tm := NewTokenManager("id", "secret")
	tm.tokenURL = tokenSrv.URL

	client := NewClient(
		WithBaseURLOption(srv.URL),
		WithTokenManager(tm),
	)
	_, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

// ---------------------------------------------------------------------------
// Projection Tests
// ---------------------------------------------------------------------------

func TestProjectStatesNullFields(t *testing.T) {
	raw := [][]interface{}{
		{"def456", "  ", "Canada", nil, nil, nil, nil, nil, true, nil, nil, nil},
	}

	states := ProjectStates(raw)
	require.Len(t, states, 1)

	f := states[0]
	assert.Equal(t, "def456", f.ICAO24)
	assert.Equal(t, "", f.Callsign)
	assert.Nil(t, f.TimePosition)
	assert.Nil(t, f.LastContact)
	assert.Nil(t, f.Longitude)
	assert.Nil(t, f.Latitude)
	assert.Nil(t, f.BaroAltitude)
	assert.Nil(t, f.Velocity)
	assert.Nil(t, f.Heading)
	assert.Nil(t, f.VerticalRate)
	assert.True(t, f.OnGround)
}

func TestProjectStatesShortRecordSkipped(t *testing.T) {
	raw := [][]interface{}{
		{"abc123", "UAL1", "US"},
		{"def456", "ACA2 ", "CA", nil, 1700000000.0, -123.2, 49.2, 10000.0, false, 250.0, 180.0, 0.0},
	}

	states := ProjectStates(raw)
	require.Len(t, states, 1)
	assert.Equal(t, "def456", states[0].ICAO24)
	assert.Equal(t, "ACA2", states[0].Callsign)
	require.NotNil(t, states[0].LastContact)
	assert.Equal(t, int64(1700000000), *states[0].LastContact)
}

func TestProjectStatesEmpty(t *testing.T) {
	states := ProjectStates(nil)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestProjectStatesExtraFieldsTolerated(t *testing.T) {
	// Seventeen-field records from newer API versions still project the
	// first twelve positions.
	raw := [][]interface{}{
		{"abc123", "UAL456 ", "US", 1700000000.0, 1700000000.0, -73.9, 40.7,
			10000.0, false, 250.0, 180.0, 0.0, nil, 10500.0, "1234", false, 0.0},
	}

	states := ProjectStates(raw)
	require.Len(t, states, 1)
	require.NotNil(t, states[0].VerticalRate)
	assert.InDelta(t, 0.0, *states[0].VerticalRate, 0.001)
}

// ---------------------------------------------------------------------------
// Rate Limiter Tests
// ---------------------------------------------------------------------------

func TestRateLimiterFirstCallImmediate(t *testing.T) {
	rl := NewRateLimiter(100 * time.Millisecond)
	start := time.Now()
	err := rl.Wait(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRateLimiterEnforcesInterval(t *testing.T) {
	rl := NewRateLimiter(100 * time.Millisecond)

	err := rl.Wait(context.Background())
	require.NoError(t, err)

	start := time.Now()
	err = rl.Wait(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiterContextCancel(t *testing.T) {
	rl := NewRateLimiter(1 * time.Second)
	rl.Wait(context.Background()) // First call

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Already cancelled

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// Metrics Tests
// ---------------------------------------------------------------------------

func TestMetricsRecordLatency(t *testing.T) {
	m := &Metrics{}

	m.RecordLatency(100 * time.Millisecond)
	assert.Equal(t, int64(100_000_000), m.LastLatencyNs.Load())
	assert.Equal(t, int64(100_000_000), m.AvgLatencyNs.Load())

	m.RecordLatency(200 * time.Millisecond)
	assert.Equal(t, int64(200_000_000), m.LastLatencyNs.Load())
	assert.Equal(t, int64(150_000_000), m.AvgLatencyNs.Load()) // Average of 100 and 200
}

func TestClientMetricsTracked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"time": 1700000000,
			"states": [][]interface{}{
				{"abc123", "ACA100 ", "CA", nil, 1700000000.0, -123.2, 49.2, 10000.0, false, 250.0, 180.0, 0.0},
			},
		})
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	_, err := client.FetchAllStates(context.Background())
	require.NoError(t, err)

	snap := client.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.SuccessRequests)
	assert.Equal(t, int64(0), snap.FailedRequests)
	assert.Equal(t, int64(1), snap.TotalFlights)
}
