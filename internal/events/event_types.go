package events

import (
	"time"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated   EventType = "report_created"
	EventReportLiked     EventType = "report_liked"
	EventAdvisoryIssued  EventType = "advisory_issued"
	EventAdvisoryUpdated EventType = "advisory_updated"
	EventSummaryCreated  EventType = "summary_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	Hazard    domain.HazardType `json:"hazard"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
}

// AdvisoryIssuedPayload payload.
type AdvisoryIssuedPayload struct {
	Title    string                  `json:"title"`
	Severity domain.AdvisorySeverity `json:"severity"`
	Region   string                  `json:"region"`
}
