package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coastwatch/hazard-service/internal/auth"
	"github.com/coastwatch/hazard-service/internal/config"
	"github.com/coastwatch/hazard-service/internal/domain"
	"github.com/coastwatch/hazard-service/internal/repository"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

// AuthService coordinates registration, login and session resolution.
//
// Logout is intentionally stateless: there is no server-side revocation, a
// client logs out by discarding its token and the session lapses at its fixed
// expiry. Repeated login failures carry no lockout or backoff.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	bcryptCost int
	sessionTTL time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
}

// NewAuthService builds the service from injected configuration.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		bcryptCost: cfg.BcryptCost,
		sessionTTL: cfg.SessionTTL(),
		now:        time.Now,
	}
}

// ProfileUpdateInput carries the self-service profile mutation. Role is
// deliberately absent: a user cannot change their own role on this path.
type ProfileUpdateInput struct {
	Name           *string
	Email          *string
	Password       *string
	ProfilePicture *string
}

// Register creates a new account plus an initial session and returns the
// user with the session token. Name defaults to empty, role to citizen.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}
	if role == "" {
		role = domain.RoleCitizen
	}
	if !domain.ValidRole(role) {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewAlreadyExists("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewStorageFailure(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// lost the race to a concurrent registration for the same email
			return nil, "", time.Time{}, apperrors.NewAlreadyExists("email already registered")
		}
		return nil, "", time.Time{}, apperrors.NewStorageFailure(err)
	}

	token, expiresAt, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login verifies credentials and opens a fresh session. Concurrent logins
// for the same user produce independent valid sessions.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// burn a hash verification so this branch costs the same as a
			// password mismatch
			auth.CompareDummy(password)
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewStorageFailure(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Authenticate resolves a bearer token to its session and owning user. It is
// a pure read: the session is never refreshed or mutated, so two calls with
// the same valid token yield the same pair. Expired or unknown tokens, and
// sessions whose user has since vanished, all fail identically.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if token == "" {
		return nil, nil, apperrors.NewUnauthenticated("no token provided")
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthenticated("invalid or expired token")
		}
		return nil, nil, apperrors.NewStorageFailure(err)
	}
	if !session.Active(s.now()) {
		return nil, nil, apperrors.NewUnauthenticated("invalid or expired token")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// session outlived its user
			return nil, nil, apperrors.NewUnauthenticated("invalid or expired token")
		}
		return nil, nil, apperrors.NewStorageFailure(err)
	}

	return user, session, nil
}

// UpdateProfile applies the self-service profile mutation for the
// authenticated user. Unset fields keep their current value.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = input.ProfilePicture
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return user, nil
}

// UpdateUserRole is the privileged role mutation. Callers must gate it
// behind the official role; the service only validates the target value.
func (s *AuthService) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return user, nil
}

func (s *AuthService) createSession(ctx context.Context, userID string) (string, time.Time, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, apperrors.NewStorageFailure(err)
	}
	return token, session.ExpiresAt, nil
}
