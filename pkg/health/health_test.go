package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passingCheck() CheckFunc {
	return func(_ context.Context) error {
		return nil
	}
}

func failingCheck(msg string) CheckFunc {
	return func(_ context.Context) error {
		return errors.New(msg)
	}
}

func probe(t *testing.T, fn http.HandlerFunc, path string) (*httptest.ResponseRecorder, statusResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	fn(w, req)

	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w, body
}

func TestLiveEndpoint_AllPassing(t *testing.T) {
	h := New()
	h.AddLivenessCheck("check1", time.Second, passingCheck())
	h.AddLivenessCheck("check2", time.Second, passingCheck())

	w, body := probe(t, h.LiveEndpoint, "/livez")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "ok", body.Status)
}

func TestLiveEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("db", time.Second, failingCheck("connection refused"))

	w, body := probe(t, h.LiveEndpoint, "/livez")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["db"])
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	h := New()

	w, body := probe(t, h.LiveEndpoint, "/livez")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body.Status)
}

func TestReadyEndpoint_ReadyAndPassing(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, passingCheck())
	h.SetReady(true)

	w, body := probe(t, h.ReadyEndpoint, "/readyz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body.Status)
}

func TestReadyEndpoint_NotReady(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, passingCheck())
	// SetReady(true) deliberately not called.

	w, body := probe(t, h.ReadyEndpoint, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Contains(t, body.Checks, "_readiness")
}

func TestReadyEndpoint_DrainOnShutdown(t *testing.T) {
	h := New()
	h.SetReady(true)

	w, _ := probe(t, h.ReadyEndpoint, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)

	h.SetReady(false)

	w, _ = probe(t, h.ReadyEndpoint, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReadyEndpoint_MultipleChecksOneFailing(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, passingCheck())
	h.AddReadinessCheck("cache", time.Second, failingCheck("cache down"))
	h.SetReady(true)

	w, body := probe(t, h.ReadyEndpoint, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, body.Checks, "cache")
	assert.NotContains(t, body.Checks, "db")
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddLivenessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	w, body := probe(t, h.LiveEndpoint, "/livez")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, body.Checks, "slow")
}

func TestIsReady(t *testing.T) {
	h := New()

	assert.False(t, h.IsReady(), "should not be ready before SetReady")

	h.SetReady(true)
	assert.True(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady())
}

func TestConcurrentAccess(t *testing.T) {
	h := New()
	h.AddLivenessCheck("a", time.Second, failingCheck("err"))
	h.AddReadinessCheck("b", time.Second, passingCheck())
	h.SetReady(true)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				h.IsReady()

				req := httptest.NewRequest(http.MethodGet, "/livez", nil)
				h.LiveEndpoint(httptest.NewRecorder(), req)

				req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
				h.ReadyEndpoint(httptest.NewRecorder(), req)
			}
		}()
	}
	wg.Wait()
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestDatabaseCheck(t *testing.T) {
	ok := DatabaseCheck(pingerFunc(func(_ context.Context) error { return nil }))
	assert.NoError(t, ok(context.Background()))

	down := DatabaseCheck(pingerFunc(func(_ context.Context) error {
		return errors.New("refused")
	}))
	err := down(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestUptimeCheck(t *testing.T) {
	assert.Error(t, UptimeCheck(time.Hour)(context.Background()), "should fail during warmup")
	assert.NoError(t, UptimeCheck(0)(context.Background()))
}
