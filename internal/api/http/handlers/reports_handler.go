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

// ReportsHandler exposes hazard report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Create handles POST /api/hazard-reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.ReportCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.CreateReport(c.Context(), principal.User, service.ReportCreateInput{
		Hazard:      domain.HazardType(req.Hazard),
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reportResponse(report)})
}

// List handles GET /api/hazard-reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.ListReports(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, reportResponse(report))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Like handles POST /api/hazard-reports/:id/like.
func (h *ReportsHandler) Like(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	report, err := h.reports.ToggleLike(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// UpdateStatus handles PUT /api/hazard-reports/:id/status. Officials only.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	var req dto.ReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.UpdateStatus(c.Context(), principal.User, c.Params("id"), domain.ReportStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

func reportResponse(report *domain.HazardReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          report.ID,
		ReporterID:  report.ReporterID,
		Hazard:      report.Hazard,
		Description: report.Description,
		Latitude:    report.Latitude,
		Longitude:   report.Longitude,
		Status:      report.Status,
		Likes:       report.Likes,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}
