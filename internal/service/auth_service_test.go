package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coastwatch/hazard-service/internal/config"
	"github.com/coastwatch/hazard-service/internal/domain"
	"github.com/coastwatch/hazard-service/internal/repository"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	clone := *user
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.CreatedAt = time.Now()
	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *memSessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func newTestAuthService(users *memUserRepo, sessions *memSessionRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		SessionTTLHours: 168,
		BcryptCost:      bcrypt.MinCost,
	}, AuthDependencies{UserRepo: users, SessionRepo: sessions})
}

func TestRegisterDefaultsAndAuthenticate(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemSessionRepo())

	user, token, exp, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, user.Role, "role defaults to citizen")
	assert.Equal(t, "Alice", user.Name)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), exp, time.Minute)

	resolved, session, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, resolved.Role)
	assert.Equal(t, user.ID, session.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemSessionRepo())

	_, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)
	require.Equal(t, 1, users.count())

	_, _, _, err = svc.Register(context.Background(), "alice@example.com", "other", "Imposter", "")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Equal(t, 1, users.count(), "failed attempt leaves user count unchanged")
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	_, _, _, err := svc.Register(context.Background(), "", "pw", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Register(context.Background(), "a@b.c", "", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Register(context.Background(), "a@b.c", "pw", "", "superadmin")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	_, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	// unknown email fails with the identical error
	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "pw123")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestConcurrentLoginsProduceIndependentSessions(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	_, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	tokens := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, tokens[i], _, errs[i] = svc.Login(context.Background(), "alice@example.com", "pw123")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, tokens[0], tokens[1])

	for _, token := range tokens {
		_, _, err := svc.Authenticate(context.Background(), token)
		assert.NoError(t, err)
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	_, _, err := svc.Authenticate(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, err = svc.Authenticate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestAuthenticateExpiredSessionStillInStore(t *testing.T) {
	sessions := newMemSessionRepo()
	svc := newTestAuthService(newMemUserRepo(), sessions)

	_, token, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	// jump past expiry; the session row stays in the store untouched
	svc.now = func() time.Time { return time.Now().Add(169 * time.Hour) }

	_, _, err = svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	stored, err := sessions.GetByToken(context.Background(), token)
	require.NoError(t, err, "expired session row still exists in storage")
	assert.NotNil(t, stored)
}

func TestAuthenticateIsIdempotent(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	_, token, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	user1, session1, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	user2, session2, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, user1.ID, user2.ID)
	assert.Equal(t, session1.ID, session2.ID)
	assert.Equal(t, session1.ExpiresAt, session2.ExpiresAt, "no mutation of the session on read")
}

func TestAuthenticateSessionOutlivesDeletedUser(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemSessionRepo())

	user, token, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	users.mu.Lock()
	delete(users.users, user.ID)
	users.mu.Unlock()

	_, _, err = svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestRedactedViewNeverCarriesPassword(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemSessionRepo())

	user, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	payload, err := json.Marshal(user.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), user.PasswordHash)
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemSessionRepo())

	user, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	newName := "Alice B"
	newPassword := "pw456"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdateInput{
		Name:     &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, domain.RoleCitizen, updated.Role)

	// old password no longer works, new one does
	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "pw123")
	require.Error(t, err)
	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "pw456")
	require.NoError(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemSessionRepo())

	user, _, _, err := svc.Register(context.Background(), "alice@example.com", "pw123", "Alice", "")
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(context.Background(), user.ID, domain.RoleAnalyst)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnalyst, updated.Role)

	_, err = svc.UpdateUserRole(context.Background(), user.ID, "root")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.UpdateUserRole(context.Background(), "missing", domain.RoleAnalyst)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
