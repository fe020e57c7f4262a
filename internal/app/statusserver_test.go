package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/k2700go/internal/meter"
	"github.com/specialistvlad/k2700go/internal/readings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStatusApp builds the minimal App a status handler needs.
func newStatusApp() *App {
	return &App{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  readings.New(),
	}
}

func TestHealthEndpoint(t *testing.T) {
	a := newStatusApp()
	recorder := httptest.NewRecorder()
	a.statusMux().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK\n", recorder.Body.String())
}

func TestReadingsEndpointBeforeFirstScan(t *testing.T) {
	a := newStatusApp()
	recorder := httptest.NewRecorder()
	a.statusMux().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/readings", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestReadingsEndpointServesLatestScan(t *testing.T) {
	a := newStatusApp()
	a.store.Record(&meter.ScanResult{
		Readings: map[int]meter.Measurement{
			101: {ChannelID: 101, Time: 2.0, Value: 23.5, Unit: "C"},
		},
	})

	recorder := httptest.NewRecorder()
	a.statusMux().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/readings", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var snapshot readings.Snapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	assert.Equal(t, 1, snapshot.Scans)
	require.Contains(t, snapshot.Readings, 101)
	assert.InDelta(t, 23.5, snapshot.Readings[101].Value, 1e-9)
	assert.Equal(t, "C", snapshot.Readings[101].Unit)
}
