package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		UploadsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_uploads_started_total",
			Help: "The total number of highlight uploads started.",
		}),
		UploadsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_uploads_completed_total",
			Help: "The total number of highlight uploads that reached success.",
		}),
		UploadsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_uploads_failed_total",
			Help: "The total number of highlight uploads that ended in error.",
		}),
		UploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "touchline_upload_duration_seconds",
			Help:    "The duration of individual highlight uploads end to end.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		HighlightMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "touchline_highlight_mutations_total",
			Help: "The total number of highlight document mutations, by operation.",
		}, []string{"op"}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_highlight_version_conflicts_total",
			Help: "The total number of compare-and-swap conflicts on highlight documents.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		TextGenRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_textgen_requests_total",
			Help: "The total number of requests made to the text-generation service.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "touchline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.UploadsStarted,
		s.UploadsCompleted,
		s.UploadsFailed,
		s.UploadDuration,
		s.HighlightMutations,
		s.VersionConflicts,
		s.NotifSent,
		s.NotifFailed,
		s.TextGenRequests,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncUploadsStarted() {
	s.UploadsStarted.Inc()
}

func (s *Service) IncUploadsCompleted() {
	s.UploadsCompleted.Inc()
}

func (s *Service) IncUploadsFailed() {
	s.UploadsFailed.Inc()
}

func (s *Service) ObserveUploadDuration(seconds float64) {
	s.UploadDuration.Observe(seconds)
}

func (s *Service) IncHighlightMutations(op string) {
	s.HighlightMutations.WithLabelValues(op).Inc()
}

func (s *Service) IncVersionConflicts() {
	s.VersionConflicts.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncTextGenRequests() {
	s.TextGenRequests.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
