package domain

import "time"

// AdvisorySeverity enumerates public advisory urgency levels.
type AdvisorySeverity string

const (
	SeverityInfo     AdvisorySeverity = "INFO"
	SeverityWatch    AdvisorySeverity = "WATCH"
	SeverityWarning  AdvisorySeverity = "WARNING"
	SeverityCritical AdvisorySeverity = "CRITICAL"
)

// Advisory is an official-issued public hazard advisory.
type Advisory struct {
	ID        string
	IssuerID  string
	Title     string
	Body      string
	Severity  AdvisorySeverity
	Region    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnalystSummary is an analyst-authored rollup over hazard reports, consumed
// by dashboards.
type AnalystSummary struct {
	ID          string
	AnalystID   string
	Title       string
	Body        string
	ReportCount int
	WindowFrom  time.Time
	WindowTo    time.Time
	CreatedAt   time.Time
}
