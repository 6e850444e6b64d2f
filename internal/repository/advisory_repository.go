package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// AdvisoryRepository defines persistence access for public advisories.
type AdvisoryRepository interface {
	Create(ctx context.Context, advisory *domain.Advisory) error
	Update(ctx context.Context, advisory *domain.Advisory) error
	GetByID(ctx context.Context, id string) (*domain.Advisory, error)
	ListActive(ctx context.Context) ([]*domain.Advisory, error)
}

// AnalystSummaryRepository defines persistence access for analyst summaries.
type AnalystSummaryRepository interface {
	Create(ctx context.Context, summary *domain.AnalystSummary) error
	List(ctx context.Context, limit, offset int) ([]*domain.AnalystSummary, error)
}

type advisoryRepository struct {
	pool *pgxpool.Pool
}

// NewAdvisoryRepository returns a Postgres-backed implementation.
func NewAdvisoryRepository(pool *pgxpool.Pool) AdvisoryRepository {
	return &advisoryRepository{pool: pool}
}

func (r *advisoryRepository) Create(ctx context.Context, advisory *domain.Advisory) error {
	const query = `
        INSERT INTO advisories (id, issuer_id, title, body, severity, region, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		advisory.ID,
		advisory.IssuerID,
		advisory.Title,
		advisory.Body,
		advisory.Severity,
		advisory.Region,
		advisory.Active,
	).Scan(&advisory.CreatedAt, &advisory.UpdatedAt)
}

func (r *advisoryRepository) Update(ctx context.Context, advisory *domain.Advisory) error {
	const query = `
        UPDATE advisories SET title=$1, body=$2, severity=$3, region=$4, active=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		advisory.Title,
		advisory.Body,
		advisory.Severity,
		advisory.Region,
		advisory.Active,
		advisory.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *advisoryRepository) GetByID(ctx context.Context, id string) (*domain.Advisory, error) {
	const query = `
        SELECT id, issuer_id, title, body, severity, region, active, created_at, updated_at
        FROM advisories WHERE id=$1`

	var advisory domain.Advisory
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&advisory.ID,
		&advisory.IssuerID,
		&advisory.Title,
		&advisory.Body,
		&advisory.Severity,
		&advisory.Region,
		&advisory.Active,
		&advisory.CreatedAt,
		&advisory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &advisory, nil
}

func (r *advisoryRepository) ListActive(ctx context.Context) ([]*domain.Advisory, error) {
	const query = `
        SELECT id, issuer_id, title, body, severity, region, active, created_at, updated_at
        FROM advisories WHERE active ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advisories []*domain.Advisory
	for rows.Next() {
		var advisory domain.Advisory
		if err := rows.Scan(
			&advisory.ID,
			&advisory.IssuerID,
			&advisory.Title,
			&advisory.Body,
			&advisory.Severity,
			&advisory.Region,
			&advisory.Active,
			&advisory.CreatedAt,
			&advisory.UpdatedAt,
		); err != nil {
			return nil, err
		}
		advisories = append(advisories, &advisory)
	}
	return advisories, rows.Err()
}

type analystSummaryRepository struct {
	pool *pgxpool.Pool
}

// NewAnalystSummaryRepository returns a Postgres-backed implementation.
func NewAnalystSummaryRepository(pool *pgxpool.Pool) AnalystSummaryRepository {
	return &analystSummaryRepository{pool: pool}
}

func (r *analystSummaryRepository) Create(ctx context.Context, summary *domain.AnalystSummary) error {
	const query = `
        INSERT INTO analyst_summaries (id, analyst_id, title, body, report_count, window_from, window_to)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		summary.ID,
		summary.AnalystID,
		summary.Title,
		summary.Body,
		summary.ReportCount,
		summary.WindowFrom,
		summary.WindowTo,
	).Scan(&summary.CreatedAt)
}

func (r *analystSummaryRepository) List(ctx context.Context, limit, offset int) ([]*domain.AnalystSummary, error) {
	const query = `
        SELECT id, analyst_id, title, body, report_count, window_from, window_to, created_at
        FROM analyst_summaries ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.AnalystSummary
	for rows.Next() {
		var summary domain.AnalystSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.AnalystID,
			&summary.Title,
			&summary.Body,
			&summary.ReportCount,
			&summary.WindowFrom,
			&summary.WindowTo,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}
