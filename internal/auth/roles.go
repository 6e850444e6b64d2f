package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coastwatch/hazard-service/internal/domain"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

// Authorize reports whether the user's role is in the allowed set. It is a
// pure predicate; an empty set allows any authenticated user.
func Authorize(user *domain.User, allowed ...domain.Role) bool {
	if user == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}

// RequireRole ensures the principal holds one of the allowed roles. It must
// run after Middleware.Handle has populated the principal. The denial says
// nothing about whether the target resource exists.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthenticated("no token provided")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present without constraining
// its role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("no token provided")
		}
		return c.Next()
	}
}
