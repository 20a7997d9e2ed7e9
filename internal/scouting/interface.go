package scouting

// ReportStore defines the interface for interacting with scouting reports.
type ReportStore interface {
	AddReport(report *Report) error
	GetReport(reportID string) (*Report, error)
	GetReports(playerID string) ([]Report, error)
	SetReview(reportID, review string) error
	DeleteReport(reportID string) error
}
