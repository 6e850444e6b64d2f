package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coastwatch/hazard-service/internal/domain"
	"github.com/coastwatch/hazard-service/internal/events"
	"github.com/coastwatch/hazard-service/internal/repository"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

// ReportService coordinates hazard report workflows. It sits behind the auth
// gate; handlers pass the authenticated user through explicitly.
type ReportService struct {
	reports    repository.HazardReportRepository
	dispatcher events.Dispatcher
}

// ReportCreateInput describes a hazard report submission.
type ReportCreateInput struct {
	Hazard      domain.HazardType
	Description string
	Latitude    float64
	Longitude   float64
}

// NewReportService constructs the service.
func NewReportService(reports repository.HazardReportRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher}
}

// CreateReport records a new hazard observation for the reporting user.
func (s *ReportService) CreateReport(ctx context.Context, reporter *domain.User, input ReportCreateInput) (*domain.HazardReport, error) {
	if input.Hazard == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("hazard and description are required", nil)
	}

	report := &domain.HazardReport{
		ID:          uuid.NewString(),
		ReporterID:  reporter.ID,
		Hazard:      input.Hazard,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      domain.ReportStatusPending,
		LikedBy:     []string{},
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReportCreated,
		SubjectID: report.ID,
		Actor:     events.Actor{UserID: reporter.ID, Role: reporter.Role},
		Timestamp: time.Now(),
		Payload: events.ReportCreatedPayload{
			Hazard:    report.Hazard,
			Latitude:  report.Latitude,
			Longitude: report.Longitude,
		},
	})

	return report, nil
}

// ListReports returns recent reports, newest first.
func (s *ReportService) ListReports(ctx context.Context, limit, offset int) ([]*domain.HazardReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	reports, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return reports, nil
}

// ToggleLike flips the caller's like on a report. Liking twice returns the
// report to its original count.
func (s *ReportService) ToggleLike(ctx context.Context, user *domain.User, reportID string) (*domain.HazardReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	if report.LikedByUser(user.ID) {
		report.Likes--
		filtered := report.LikedBy[:0]
		for _, id := range report.LikedBy {
			if id != user.ID {
				filtered = append(filtered, id)
			}
		}
		report.LikedBy = filtered
	} else {
		report.Likes++
		report.LikedBy = append(report.LikedBy, user.ID)
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReportLiked,
		SubjectID: report.ID,
		Actor:     events.Actor{UserID: user.ID, Role: user.Role},
		Timestamp: time.Now(),
	})

	return report, nil
}

// UpdateStatus moves a report through its verification lifecycle. Only
// officials reach this path; the router gates it by role.
func (s *ReportService) UpdateStatus(ctx context.Context, actor *domain.User, reportID string, status domain.ReportStatus) (*domain.HazardReport, error) {
	switch status {
	case domain.ReportStatusPending, domain.ReportStatusVerified, domain.ReportStatusRejected:
	default:
		return nil, apperrors.NewValidationError("unknown report status", map[string]any{"status": string(status)})
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	report.Status = status
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return report, nil
}
