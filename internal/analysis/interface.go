package analysis

// ReportStore defines the interface for interacting with performance reports.
type ReportStore interface {
	AddReport(report *Report) error
	GetReports(playerID string) ([]Report, error)
	DeleteReport(reportID string) error
}
