package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coastwatch/hazard-service/internal/domain"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

const principalKey = "auth_principal"

// Authenticator resolves a bearer token to a live session and its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error)
}

// Principal represents the authenticated caller attached to a request.
type Principal struct {
	User    *domain.User
	Session *domain.Session
}

// Middleware validates bearer tokens and loads principals into the request
// context before any handler runs.
type Middleware struct {
	authn Authenticator
}

// NewMiddleware constructs the middleware.
func NewMiddleware(authn Authenticator) *Middleware {
	return &Middleware{authn: authn}
}

// Handle enforces authentication for protected routes. A missing or
// malformed Authorization header is treated identically to no token.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return apperrors.NewUnauthenticated("no token provided")
	}

	user, session, err := m.authn.Authenticate(c.Context(), token)
	if err != nil {
		return err
	}

	c.Locals(principalKey, &Principal{User: user, Session: session})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other shape yields the empty string.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
