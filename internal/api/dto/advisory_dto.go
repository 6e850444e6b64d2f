package dto

import (
	"time"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// AdvisoryRequest payload for issuing or updating an advisory.
type AdvisoryRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Severity string `json:"severity"`
	Region   string `json:"region"`
	Active   *bool  `json:"active"`
}

// SummaryRequest payload for analyst summaries.
type SummaryRequest struct {
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	WindowFrom time.Time `json:"window_from"`
	WindowTo   time.Time `json:"window_to"`
}

// AdvisoryResponse is the wire view of a public advisory.
type AdvisoryResponse struct {
	ID        string                  `json:"id"`
	IssuerID  string                  `json:"issuer_id"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Severity  domain.AdvisorySeverity `json:"severity"`
	Region    string                  `json:"region"`
	Active    bool                    `json:"active"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// SummaryResponse is the wire view of an analyst summary.
type SummaryResponse struct {
	ID          string    `json:"id"`
	AnalystID   string    `json:"analyst_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ReportCount int       `json:"report_count"`
	WindowFrom  time.Time `json:"window_from"`
	WindowTo    time.Time `json:"window_to"`
	CreatedAt   time.Time `json:"created_at"`
}
