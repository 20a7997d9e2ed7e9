package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncUploadsStarted()
	IncUploadsCompleted()
	IncUploadsFailed()
	ObserveUploadDuration(seconds float64)
	IncHighlightMutations(op string)
	IncVersionConflicts()
	IncNotifSent()
	IncNotifFailed()
	IncTextGenRequests()
	SetStartupTime(seconds float64)
}
