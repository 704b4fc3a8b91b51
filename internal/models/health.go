package models

// HealthStatus is the liveness probe payload
type HealthStatus struct {
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
