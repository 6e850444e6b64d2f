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

// AdvisoriesHandler exposes advisory and analyst summary endpoints.
type AdvisoriesHandler struct {
	advisories *service.AdvisoryService
}

// NewAdvisoriesHandler constructs the handler.
func NewAdvisoriesHandler(advisoryService *service.AdvisoryService) *AdvisoriesHandler {
	return &AdvisoriesHandler{advisories: advisoryService}
}

// Issue handles POST /api/advisories. Officials only.
func (h *AdvisoriesHandler) Issue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.AdvisoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	advisory, err := h.advisories.IssueAdvisory(c.Context(), principal.User, service.AdvisoryInput{
		Title:    req.Title,
		Body:     req.Body,
		Severity: domain.AdvisorySeverity(req.Severity),
		Region:   req.Region,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": advisoryResponse(advisory)})
}

// Update handles PUT /api/advisories/:id. Officials only.
func (h *AdvisoriesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.AdvisoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	advisory, err := h.advisories.UpdateAdvisory(c.Context(), principal.User, c.Params("id"), service.AdvisoryInput{
		Title:    req.Title,
		Body:     req.Body,
		Severity: domain.AdvisorySeverity(req.Severity),
		Region:   req.Region,
		Active:   req.Active,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": advisoryResponse(advisory)})
}

// List handles GET /api/advisories. Public.
func (h *AdvisoriesHandler) List(c *fiber.Ctx) error {
	advisories, err := h.advisories.ListActiveAdvisories(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.AdvisoryResponse, 0, len(advisories))
	for _, advisory := range advisories {
		items = append(items, advisoryResponse(advisory))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateSummary handles POST /api/analyst-reports. Analysts only.
func (h *AdvisoriesHandler) CreateSummary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	summary, err := h.advisories.CreateSummary(c.Context(), principal.User, service.SummaryInput{
		Title:      req.Title,
		Body:       req.Body,
		WindowFrom: req.WindowFrom,
		WindowTo:   req.WindowTo,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": summaryResponse(summary)})
}

// ListSummaries handles GET /api/analyst-reports. Analysts and officials.
func (h *AdvisoriesHandler) ListSummaries(c *fiber.Ctx) error {
	summaries, err := h.advisories.ListSummaries(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.SummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, summaryResponse(summary))
	}
	return c.JSON(fiber.Map{"data": items})
}

func advisoryResponse(advisory *domain.Advisory) dto.AdvisoryResponse {
	return dto.AdvisoryResponse{
		ID:        advisory.ID,
		IssuerID:  advisory.IssuerID,
		Title:     advisory.Title,
		Body:      advisory.Body,
		Severity:  advisory.Severity,
		Region:    advisory.Region,
		Active:    advisory.Active,
		CreatedAt: advisory.CreatedAt,
		UpdatedAt: advisory.UpdatedAt,
	}
}

func summaryResponse(summary *domain.AnalystSummary) dto.SummaryResponse {
	return dto.SummaryResponse{
		ID:          summary.ID,
		AnalystID:   summary.AnalystID,
		Title:       summary.Title,
		Body:        summary.Body,
		ReportCount: summary.ReportCount,
		WindowFrom:  summary.WindowFrom,
		WindowTo:    summary.WindowTo,
		CreatedAt:   summary.CreatedAt,
	}
}
