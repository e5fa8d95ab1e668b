package api

import (
	"context"

	"petmanager/internal/models"
	"petmanager/internal/normalize"
)

// Health fetches the aggregate health report. On any failure a DOWN report
// is returned alongside the error.
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	raw, err := c.getAny(ctx, "/q/health", nil)
	if err != nil {
		return models.HealthStatus{Status: models.StatusDown}, err
	}
	return healthFromPayload(raw), nil
}

// Live reports the liveness probe result.
func (c *Client) Live(ctx context.Context) bool {
	raw, err := c.getAny(ctx, "/q/health/live", nil)
	return err == nil && healthFromPayload(raw).Status == models.StatusUp
}

// Ready reports the readiness probe result.
func (c *Client) Ready(ctx context.Context) bool {
	raw, err := c.getAny(ctx, "/q/health/ready", nil)
	return err == nil && healthFromPayload(raw).Status == models.StatusUp
}

func healthFromPayload(raw any) models.HealthStatus {
	st := models.HealthStatus{Status: models.StatusDown}
	m, ok := raw.(map[string]any)
	if !ok {
		return st
	}
	if s, _ := m["status"].(string); s == models.StatusUp {
		st.Status = models.StatusUp
	}
	if checks, ok := m["checks"].([]any); ok {
		for _, check := range checks {
			cm, ok := check.(map[string]any)
			if !ok {
				continue
			}
			st.Checks = append(st.Checks, models.HealthCheck{
				Name:   normalize.StringField(cm, "name"),
				Status: normalize.StringField(cm, "status"),
			})
		}
	}
	return st
}
