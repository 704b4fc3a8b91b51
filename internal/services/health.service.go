package services

import (
	"time"

	"diskmonitor/internal/metrics"
	"diskmonitor/internal/models"
)

// TimestampLayout is the format of HealthStatus.Timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// HealthService reports liveness relative to a start time fixed at construction
type HealthService struct {
	startedAt time.Time
	now       func() time.Time
}

// NewHealthService captures startedAt once; it is never modified afterwards
func NewHealthService(startedAt time.Time) *HealthService {
	return &HealthService{
		startedAt: startedAt,
		now:       time.Now,
	}
}

// StartedAt returns the process start time
func (h *HealthService) StartedAt() time.Time {
	return h.startedAt
}

// Uptime returns the time elapsed since start
func (h *HealthService) Uptime() time.Duration {
	return h.uptimeAt(h.now())
}

func (h *HealthService) uptimeAt(now time.Time) time.Duration {
	uptime := now.Sub(h.startedAt)
	if uptime < 0 {
		return 0
	}
	return uptime
}

// Status builds the current HealthStatus
func (h *HealthService) Status() models.HealthStatus {
	now := h.now()
	uptime := h.uptimeAt(now).Seconds()
	metrics.SetUptime(uptime)

	return models.HealthStatus{
		Status:        "healthy",
		Timestamp:     now.Format(TimestampLayout),
		UptimeSeconds: round2(uptime),
	}
}
