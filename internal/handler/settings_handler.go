package handler

import (
	"net/http"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SettingsHandler handles the persisted settings record
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SettingsRequest represents the settings request body
type SettingsRequest struct {
	Balance           string `json:"balance"`
	Rate              string `json:"rate"`
	Years             int    `json:"years"`
	Months            int    `json:"months"`
	Overpay           string `json:"overpay"`
	HouseValue        string `json:"houseValue"`
	OriginalMortgage  string `json:"originalMortgage"`
	FixedRateEndMonth int    `json:"fixedRateEndMonth,omitempty"`
	FixedRateEndYear  int    `json:"fixedRateEndYear,omitempty"`
	IsTracker         bool   `json:"isTracker"`
}

// GetSettings handles GET /api/v1/settings
// @Summary Get the stored settings
// @Tags settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Failure 404 {object} ProblemDetails
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get()
	if err != nil {
		return handleServiceError(c, err, "get settings")
	}
	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// PutSettings handles PUT /api/v1/settings
// @Summary Save the settings
// @Description Overwrites the stored record and notifies websocket clients
// @Tags settings
// @Accept json
// @Produce json
// @Param request body SettingsRequest true "Mortgage settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /settings [put]
func (h *SettingsHandler) PutSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	settings := &domain.MortgageSettings{
		Balance:           p.parse("balance", req.Balance, true),
		Rate:              p.parse("rate", req.Rate, true),
		Years:             req.Years,
		Months:            req.Months,
		Overpay:           p.parse("overpay", req.Overpay, false),
		HouseValue:        p.parse("houseValue", req.HouseValue, false),
		OriginalMortgage:  p.parse("originalMortgage", req.OriginalMortgage, false),
		FixedRateEndMonth: req.FixedRateEndMonth,
		FixedRateEndYear:  req.FixedRateEndYear,
		IsTracker:         req.IsTracker,
	}
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	saved, err := h.settingsService.Save(c.Request().Context(), settings)
	if err != nil {
		return handleServiceError(c, err, "save settings")
	}
	return c.JSON(http.StatusOK, toSettingsResponse(saved))
}
