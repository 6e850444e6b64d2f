package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/coastwatch/hazard-service/internal/api/dto"
	"github.com/coastwatch/hazard-service/internal/auth"
	"github.com/coastwatch/hazard-service/internal/domain"
	"github.com/coastwatch/hazard-service/internal/service"
	apperrors "github.com/coastwatch/hazard-service/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: user.Public()},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: user.Public()},
	})
}

// Me handles GET /api/user/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}
	return c.JSON(fiber.Map{"data": principal.User.Public()})
}

// UpdateProfile handles PUT /api/auth/profile for the authenticated user.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.User.ID, service.ProfileUpdateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": user.Public()})
}

// UpdateRole handles PUT /api/auth/user/:id. Officials only; the route is
// gated by RequireRole(official).
func (h *AuthHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateUserRole(c.Context(), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": user.Public()})
}
