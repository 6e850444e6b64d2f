package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coastwatch/hazard-service/internal/domain"
)

// SessionRepository defines persistence access for sessions. GetByToken does
// no expiry filtering; callers must compare expiry themselves.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}

type sessionRepository struct {
	pool   *pgxpool.Pool
	cache  *redis.Client
	logger *zap.Logger
}

// NewSessionRepository returns a Postgres-backed implementation with an
// optional Redis read-through cache. Caching by token is safe because a
// session row never changes after creation; cache entries expire with the
// session itself.
func NewSessionRepository(pool *pgxpool.Pool, cache *redis.Client, logger *zap.Logger) SessionRepository {
	return &sessionRepository{pool: pool, cache: cache, logger: logger}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (id, user_id, token, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.ExpiresAt,
	).Scan(&session.CreatedAt); err != nil {
		return err
	}

	r.cachePut(ctx, session)
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if session := r.cacheGet(ctx, token); session != nil {
		return session, nil
	}

	const query = `
        SELECT id, user_id, token, expires_at, created_at
        FROM sessions WHERE token=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.ExpiresAt,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}

	r.cachePut(ctx, &session)
	return &session, nil
}

func (r *sessionRepository) cacheKey(token string) string {
	return "session:" + token
}

func (r *sessionRepository) cachePut(ctx context.Context, session *domain.Session) {
	if r.cache == nil {
		return
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(session.Token), payload, ttl).Err(); err != nil {
		r.logger.Debug("session cache set failed", zap.Error(err))
	}
}

func (r *sessionRepository) cacheGet(ctx context.Context, token string) *domain.Session {
	if r.cache == nil {
		return nil
	}
	payload, err := r.cache.Get(ctx, r.cacheKey(token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug("session cache get failed", zap.Error(err))
		}
		return nil
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil
	}
	return &session
}
