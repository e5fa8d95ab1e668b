package facade

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"

	"petmanager/internal/api"
	"petmanager/internal/logging"
	"petmanager/internal/models"
)

const (
	defaultHealthInterval = 30 * time.Second
	healthProbeTimeout    = 5 * time.Second
)

// HealthState is the published backend-health state.
type HealthState struct {
	Status    string
	Checks    []models.HealthCheck
	CheckedAt time.Time
}

// Health polls the backend health endpoints and publishes the result.
// Overlapping polls are not deduplicated; the last response wins.
type Health struct {
	base   base[HealthState]
	client *api.Client
	log    logging.Logger
}

func NewHealth(client *api.Client, bus EventBus.Bus, log logging.Logger) *Health {
	return &Health{
		base:   base[HealthState]{bus: bus, topic: TopicHealth, state: HealthState{Status: models.StatusUnknown}},
		client: client,
		log:    log,
	}
}

func (h *Health) State() HealthState { return h.base.snapshot() }

func (h *Health) Subscribe(fn func(HealthState)) error   { return h.base.subscribe(fn) }
func (h *Health) Unsubscribe(fn func(HealthState)) error { return h.base.unsubscribe(fn) }

// Check polls /q/health once and publishes the result. Any failure is a
// DOWN report, never an error.
func (h *Health) Check(ctx context.Context) models.HealthStatus {
	status, err := h.client.Health(ctx)
	if err != nil {
		h.log.Warn(ctx, "health check failed", "error", err)
	}
	h.base.update(func(s *HealthState) {
		s.Status = status.Status
		s.Checks = status.Checks
		s.CheckedAt = time.Now()
	})
	return status
}

// Live reports the liveness probe result.
func (h *Health) Live(ctx context.Context) bool {
	return h.client.Live(ctx)
}

// Ready reports the readiness probe result.
func (h *Health) Ready(ctx context.Context) bool {
	return h.client.Ready(ctx)
}

// StartPeriodicCheck polls immediately and then on a fixed interval until
// ctx is cancelled. Run it in its own goroutine.
func (h *Health) StartPeriodicCheck(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultHealthInterval
	}

	h.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Health) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	h.Check(probeCtx)
}
