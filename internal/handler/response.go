package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://mortgagefree.app/errors/validation"
	ErrorTypeNotFound    = "https://mortgagefree.app/errors/not-found"
	ErrorTypeCalculation = "https://mortgagefree.app/errors/calculation"
	ErrorTypeInternal    = "https://mortgagefree.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewCalculationError creates a response for inputs the engine cannot compute
func NewCalculationError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     ErrorTypeCalculation,
		Title:    "Calculation Error",
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// engineFieldErrors maps engine sentinels to the request field they came from
var engineFieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrInvalidTerm, "termMonths", "Must be at least 1 month"},
	{domain.ErrInvalidPrincipal, "principal", "Must not be negative"},
	{domain.ErrInvalidRate, "annualRate", "Must not be negative"},
	{domain.ErrInvalidOverpayment, "overpay", "Must not be negative"},
	{domain.ErrInvalidPayment, "payment", "Must not be negative"},
	{domain.ErrInvalidCeiling, "ceilingMonths", "Must be between 1 and 1200"},
}

// handleServiceError writes the response for an error returned by a service
func handleServiceError(c echo.Context, err error, action string) error {
	var fieldErrs domain.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]ValidationError, len(fieldErrs))
		for i, fe := range fieldErrs {
			errs[i] = ValidationError{Field: fe.Field, Message: fe.Message}
		}
		return NewValidationError(c, "Validation failed", errs)
	}

	for _, fe := range engineFieldErrors {
		if errors.Is(err, fe.err) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: fe.field, Message: fe.message},
			})
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Invalid request", nil)
	case errors.Is(err, domain.ErrSettingsNotFound):
		return NewNotFoundError(c, "No mortgage settings saved yet")
	case errors.Is(err, domain.ErrNonFiniteResult):
		return NewCalculationError(c, "The numbers are too large to calculate")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}
