package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/programmes", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/programmes", http.StatusOK, 40*time.Millisecond)
	m.ObserveStorage("get", "dtmms_users", time.Millisecond, nil)
	m.ObserveStorage("set", "dtmms_users", time.Millisecond, errors.New("medium down"))

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(2), snapshot.RequestsTotal)
	assert.InDelta(t, 30.0, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snapshot.StorageOpsTotal)
	assert.Equal(t, uint64(1), snapshot.StorageErrorsTotal)
	assert.Zero(t, snapshot.CorruptReadsTotal)
}

func TestMetricsServiceObservesStore(t *testing.T) {
	m := NewMetricsService()
	f := newFixture(t, store.WithObserver(m))
	ctx := context.Background()
	require.NoError(t, f.medium.Set(ctx, "dtmms_sessions", []byte("[")))

	_, err := store.ReadAll[models.Session](ctx, f.store, store.KeySessions)
	require.Error(t, err)

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CorruptReadsTotal)
	assert.Equal(t, uint64(1), snapshot.StorageErrorsTotal)
	assert.NotZero(t, snapshot.StorageOpsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dtmms_storage_errors_total{key="dtmms_sessions",kind="corrupt",op="decode"} 1`)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveStorage("get", "k", time.Millisecond, nil)
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
