package model

type ReportStatus string

const (
	ReportStatusOpen       ReportStatus = "open"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

// StoredReport is a report record as returned by the external storage
// backend. The backend owns the schema; this service only reads it for the
// dashboard.
type StoredReport struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Status   ReportStatus `json:"status"`
	Category string       `json:"category"`
	Date     string       `json:"date"`
}

// ReportStats aggregates stored reports per status for the dashboard cards.
type ReportStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}
