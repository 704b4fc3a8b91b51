package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "diskmonitor"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	diskLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "disk_lookups_total",
		Help:      "Total number of disk lookups by result",
	}, []string{"result"})
	uptimeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the process started, updated by the health probe",
	})
)

// Register adds the collectors to the default Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, diskLookups, uptimeGauge)
	})
}

// ObserveRequest records one served HTTP request
func ObserveRequest(method, route, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncDiskLookup counts a resolver outcome
func IncDiskLookup(found bool) {
	result := "absent"
	if found {
		result = "found"
	}
	diskLookups.WithLabelValues(result).Inc()
}

// DiskLookups exposes the lookup counter for tests and diagnostics
func DiskLookups() *prometheus.CounterVec { return diskLookups }

// HTTPRequests exposes the request counter for tests and diagnostics
func HTTPRequests() *prometheus.CounterVec { return httpRequests }

func SetUptime(seconds float64) { uptimeGauge.Set(seconds) }
