package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed implementation of the Metrics interface.
type Service struct {
	UploadsStarted     prometheus.Counter
	UploadsCompleted   prometheus.Counter
	UploadsFailed      prometheus.Counter
	UploadDuration     prometheus.Histogram
	HighlightMutations *prometheus.CounterVec
	VersionConflicts   prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	TextGenRequests    prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
