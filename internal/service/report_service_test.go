package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/hazard-service/internal/domain"
	"github.com/coastwatch/hazard-service/internal/events"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

type memReportRepo struct {
	mu      sync.Mutex
	reports map[string]*domain.HazardReport
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[string]*domain.HazardReport)}
}

func (r *memReportRepo) Create(_ context.Context, report *domain.HazardReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *memReportRepo) Update(_ context.Context, report *domain.HazardReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *memReportRepo) GetByID(_ context.Context, id string) (*domain.HazardReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *report
	clone.LikedBy = append([]string(nil), report.LikedBy...)
	return &clone, nil
}

func (r *memReportRepo) List(_ context.Context, limit, offset int) ([]*domain.HazardReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.HazardReport, 0, len(r.reports))
	for _, report := range r.reports {
		clone := *report
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memReportRepo) CountWindow(_ context.Context, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, report := range r.reports {
		if !report.CreatedAt.Before(from) && report.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func TestCreateReport(t *testing.T) {
	repo := newMemReportRepo()
	svc := NewReportService(repo, events.NewInMemoryDispatcher())
	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen}

	report, err := svc.CreateReport(context.Background(), citizen, ReportCreateInput{
		Hazard:      domain.HazardHighWaves,
		Description: "waves over the seawall",
		Latitude:    13.08,
		Longitude:   80.27,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.Equal(t, "u1", report.ReporterID)
	assert.Zero(t, report.Likes)
}

func TestCreateReportValidation(t *testing.T) {
	svc := NewReportService(newMemReportRepo(), events.NewInMemoryDispatcher())
	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen}

	_, err := svc.CreateReport(context.Background(), citizen, ReportCreateInput{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	repo := newMemReportRepo()
	svc := NewReportService(repo, events.NewInMemoryDispatcher())
	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen}
	other := &domain.User{ID: "u2", Role: domain.RoleCitizen}

	report, err := svc.CreateReport(context.Background(), citizen, ReportCreateInput{
		Hazard:      domain.HazardRipCurrent,
		Description: "strong pull near the jetty",
	})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(context.Background(), other, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.True(t, liked.LikedByUser("u2"))

	unliked, err := svc.ToggleLike(context.Background(), other, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
	assert.False(t, unliked.LikedByUser("u2"))
}

func TestToggleLikeMissingReport(t *testing.T) {
	svc := NewReportService(newMemReportRepo(), events.NewInMemoryDispatcher())

	_, err := svc.ToggleLike(context.Background(), &domain.User{ID: "u1"}, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemReportRepo()
	svc := NewReportService(repo, events.NewInMemoryDispatcher())
	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen}
	official := &domain.User{ID: "o1", Role: domain.RoleOfficial}

	report, err := svc.CreateReport(context.Background(), citizen, ReportCreateInput{
		Hazard:      domain.HazardStormSurge,
		Description: "water rising fast",
	})
	require.NoError(t, err)

	verified, err := svc.UpdateStatus(context.Background(), official, report.ID, domain.ReportStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusVerified, verified.Status)

	_, err = svc.UpdateStatus(context.Background(), official, report.ID, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
