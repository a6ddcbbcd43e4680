package handler

import (
	"bytes"
	"net/http"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard view of the stored settings
type DashboardHandler struct {
	planService   *service.PlanService
	reportService *service.ReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(planService *service.PlanService, reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{
		planService:   planService,
		reportService: reportService,
	}
}

// GetDashboard handles GET /api/v1/dashboard
// @Summary Get the dashboard
// @Description Comparison, payoff dates, progress, chart series and warnings for the stored settings
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.planService.Dashboard(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "build dashboard")
	}
	return c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// GetReport handles GET /api/v1/dashboard/report.pdf
// @Summary Download the dashboard as PDF
// @Tags dashboard
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/report.pdf [get]
func (h *DashboardHandler) GetReport(c echo.Context) error {
	dashboard, err := h.planService.Dashboard(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "build dashboard")
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteDashboardPDF(&buf, dashboard); err != nil {
		return handleServiceError(c, err, "render report")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="mortgage-free-plan.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
