package facade

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"petmanager/internal/models"
)

func TestHealthInitialStateUnknown(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	health := NewHealth(client, bus, testLogger())

	require.Equal(t, models.StatusUnknown, health.State().Status)
	require.True(t, health.State().CheckedAt.IsZero())
}

func TestHealthCheckUp(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"UP","checks":[{"name":"database","status":"UP"}]}`))
	}))
	health := NewHealth(client, bus, testLogger())

	status := health.Check(context.Background())
	require.Equal(t, models.StatusUp, status.Status)

	st := health.State()
	require.Equal(t, models.StatusUp, st.Status)
	require.Len(t, st.Checks, 1)
	require.False(t, st.CheckedAt.IsZero())
}

func TestHealthCheckDownOnUnreachableBackend(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	health := NewHealth(client, bus, testLogger())

	status := health.Check(context.Background())
	require.Equal(t, models.StatusDown, status.Status)
	require.Equal(t, models.StatusDown, health.State().Status)
}

func TestHealthPeriodicCheckPollsUntilCancelled(t *testing.T) {
	var calls int32
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"status":"UP"}`))
	}))
	health := NewHealth(client, bus, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		health.StartPeriodicCheck(ctx, 20*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 3
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("periodic check did not stop")
	}
}
