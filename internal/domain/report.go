package domain

import "time"

// ReportStatus enumerates lifecycle states for hazard reports.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusVerified ReportStatus = "VERIFIED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// HazardType enumerates observed coastal hazard categories.
type HazardType string

const (
	HazardTsunami      HazardType = "TSUNAMI"
	HazardStormSurge   HazardType = "STORM_SURGE"
	HazardHighWaves    HazardType = "HIGH_WAVES"
	HazardCoastalFlood HazardType = "COASTAL_FLOOD"
	HazardRipCurrent   HazardType = "RIP_CURRENT"
	HazardOther        HazardType = "OTHER"
)

// HazardReport is a citizen-submitted hazard observation.
type HazardReport struct {
	ID          string
	ReporterID  string
	Hazard      HazardType
	Description string
	Latitude    float64
	Longitude   float64
	Status      ReportStatus
	Likes       int
	LikedBy     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LikedByUser reports whether the given user already liked this report.
func (r *HazardReport) LikedByUser(userID string) bool {
	for _, id := range r.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
