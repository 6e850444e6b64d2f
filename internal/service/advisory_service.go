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

// AdvisoryService coordinates public advisories and analyst summaries.
type AdvisoryService struct {
	advisories repository.AdvisoryRepository
	summaries  repository.AnalystSummaryRepository
	reports    repository.HazardReportRepository
	dispatcher events.Dispatcher
}

// AdvisoryDependencies bundles repositories for the advisory service.
type AdvisoryDependencies struct {
	AdvisoryRepo repository.AdvisoryRepository
	SummaryRepo  repository.AnalystSummaryRepository
	ReportRepo   repository.HazardReportRepository
	Dispatcher   events.Dispatcher
}

// AdvisoryInput describes an advisory issue/update payload.
type AdvisoryInput struct {
	Title    string
	Body     string
	Severity domain.AdvisorySeverity
	Region   string
	Active   *bool
}

// SummaryInput describes an analyst summary creation payload.
type SummaryInput struct {
	Title      string
	Body       string
	WindowFrom time.Time
	WindowTo   time.Time
}

// NewAdvisoryService constructs the service.
func NewAdvisoryService(deps AdvisoryDependencies) *AdvisoryService {
	return &AdvisoryService{
		advisories: deps.AdvisoryRepo,
		summaries:  deps.SummaryRepo,
		reports:    deps.ReportRepo,
		dispatcher: deps.Dispatcher,
	}
}

// IssueAdvisory publishes a new advisory on behalf of an official.
func (s *AdvisoryService) IssueAdvisory(ctx context.Context, issuer *domain.User, input AdvisoryInput) (*domain.Advisory, error) {
	if input.Title == "" || input.Body == "" {
		return nil, apperrors.NewValidationError("title and body are required", nil)
	}
	if input.Severity == "" {
		input.Severity = domain.SeverityInfo
	}

	advisory := &domain.Advisory{
		ID:       uuid.NewString(),
		IssuerID: issuer.ID,
		Title:    input.Title,
		Body:     input.Body,
		Severity: input.Severity,
		Region:   input.Region,
		Active:   true,
	}
	if err := s.advisories.Create(ctx, advisory); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAdvisoryIssued,
		SubjectID: advisory.ID,
		Actor:     events.Actor{UserID: issuer.ID, Role: issuer.Role},
		Timestamp: time.Now(),
		Payload: events.AdvisoryIssuedPayload{
			Title:    advisory.Title,
			Severity: advisory.Severity,
			Region:   advisory.Region,
		},
	})

	return advisory, nil
}

// UpdateAdvisory mutates an existing advisory. Unset fields keep their
// current value.
func (s *AdvisoryService) UpdateAdvisory(ctx context.Context, actor *domain.User, id string, input AdvisoryInput) (*domain.Advisory, error) {
	advisory, err := s.advisories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("advisory", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	if input.Title != "" {
		advisory.Title = input.Title
	}
	if input.Body != "" {
		advisory.Body = input.Body
	}
	if input.Severity != "" {
		advisory.Severity = input.Severity
	}
	if input.Region != "" {
		advisory.Region = input.Region
	}
	if input.Active != nil {
		advisory.Active = *input.Active
	}

	if err := s.advisories.Update(ctx, advisory); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAdvisoryUpdated,
		SubjectID: advisory.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
	})

	return advisory, nil
}

// ListActiveAdvisories returns currently active advisories, newest first.
func (s *AdvisoryService) ListActiveAdvisories(ctx context.Context) ([]*domain.Advisory, error) {
	advisories, err := s.advisories.ListActive(ctx)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return advisories, nil
}

// CreateSummary records an analyst rollup over the reports in a time window.
func (s *AdvisoryService) CreateSummary(ctx context.Context, analyst *domain.User, input SummaryInput) (*domain.AnalystSummary, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if !input.WindowTo.After(input.WindowFrom) {
		return nil, apperrors.NewValidationError("window_to must be after window_from", nil)
	}

	count, err := s.reports.CountWindow(ctx, input.WindowFrom, input.WindowTo)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	summary := &domain.AnalystSummary{
		ID:          uuid.NewString(),
		AnalystID:   analyst.ID,
		Title:       input.Title,
		Body:        input.Body,
		ReportCount: count,
		WindowFrom:  input.WindowFrom,
		WindowTo:    input.WindowTo,
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSummaryCreated,
		SubjectID: summary.ID,
		Actor:     events.Actor{UserID: analyst.ID, Role: analyst.Role},
		Timestamp: time.Now(),
	})

	return summary, nil
}

// ListSummaries returns recent analyst summaries.
func (s *AdvisoryService) ListSummaries(ctx context.Context, limit, offset int) ([]*domain.AnalystSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	summaries, err := s.summaries.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return summaries, nil
}
