package dto

import (
	"time"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// ReportCreateRequest payload for hazard report submission.
type ReportCreateRequest struct {
	Hazard      string  `json:"hazard"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ReportStatusRequest payload for official status updates.
type ReportStatusRequest struct {
	Status string `json:"status"`
}

// ReportResponse is the wire view of a hazard report.
type ReportResponse struct {
	ID          string              `json:"id"`
	ReporterID  string              `json:"reporter_id"`
	Hazard      domain.HazardType   `json:"hazard"`
	Description string              `json:"description"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	Status      domain.ReportStatus `json:"status"`
	Likes       int                 `json:"likes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
