package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// HazardReportRepository defines persistence access for hazard reports.
type HazardReportRepository interface {
	Create(ctx context.Context, report *domain.HazardReport) error
	Update(ctx context.Context, report *domain.HazardReport) error
	GetByID(ctx context.Context, id string) (*domain.HazardReport, error)
	List(ctx context.Context, limit, offset int) ([]*domain.HazardReport, error)
	CountWindow(ctx context.Context, from, to time.Time) (int, error)
}

type hazardReportRepository struct {
	pool *pgxpool.Pool
}

// NewHazardReportRepository returns a Postgres-backed implementation.
func NewHazardReportRepository(pool *pgxpool.Pool) HazardReportRepository {
	return &hazardReportRepository{pool: pool}
}

func (r *hazardReportRepository) Create(ctx context.Context, report *domain.HazardReport) error {
	const query = `
        INSERT INTO hazard_reports (id, reporter_id, hazard, description, latitude, longitude, status, likes, liked_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		report.ID,
		report.ReporterID,
		report.Hazard,
		report.Description,
		report.Latitude,
		report.Longitude,
		report.Status,
		report.Likes,
		report.LikedBy,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *hazardReportRepository) Update(ctx context.Context, report *domain.HazardReport) error {
	const query = `
        UPDATE hazard_reports SET status=$1, likes=$2, liked_by=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		report.Status,
		report.Likes,
		report.LikedBy,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *hazardReportRepository) GetByID(ctx context.Context, id string) (*domain.HazardReport, error) {
	const query = `
        SELECT id, reporter_id, hazard, description, latitude, longitude, status, likes, liked_by, created_at, updated_at
        FROM hazard_reports WHERE id=$1`

	var report domain.HazardReport
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.ReporterID,
		&report.Hazard,
		&report.Description,
		&report.Latitude,
		&report.Longitude,
		&report.Status,
		&report.Likes,
		&report.LikedBy,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *hazardReportRepository) List(ctx context.Context, limit, offset int) ([]*domain.HazardReport, error) {
	const query = `
        SELECT id, reporter_id, hazard, description, latitude, longitude, status, likes, liked_by, created_at, updated_at
        FROM hazard_reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.HazardReport
	for rows.Next() {
		var report domain.HazardReport
		if err := rows.Scan(
			&report.ID,
			&report.ReporterID,
			&report.Hazard,
			&report.Description,
			&report.Latitude,
			&report.Longitude,
			&report.Status,
			&report.Likes,
			&report.LikedBy,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

func (r *hazardReportRepository) CountWindow(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM hazard_reports WHERE created_at >= $1 AND created_at < $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
