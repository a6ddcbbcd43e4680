package handler

import (
	"net/http"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// PlanHandler handles stateless amortization requests
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// LoanTermsRequest represents loan terms in request bodies
type LoanTermsRequest struct {
	Principal  string `json:"principal"`
	AnnualRate string `json:"annualRate"`
	TermMonths int    `json:"termMonths"`
}

// PaymentResponse represents a fixed monthly payment
type PaymentResponse struct {
	Payment string `json:"payment"`
}

// SimulateRequest represents the simulate request body
type SimulateRequest struct {
	Principal     string `json:"principal"`
	AnnualRate    string `json:"annualRate"`
	Payment       string `json:"payment"`
	CeilingMonths int    `json:"ceilingMonths,omitempty"`
}

// CompareRequest represents the compare request body
type CompareRequest struct {
	LoanTermsRequest
	Overpay         string `json:"overpay"`
	IncludeSchedule bool   `json:"includeSchedule,omitempty"`
}

// TargetOverpaymentRequest represents the target-overpayment request body
type TargetOverpaymentRequest struct {
	LoanTermsRequest
	TargetTermMonths int `json:"targetTermMonths"`
}

// TargetOverpaymentResponse is the extra monthly amount that reaches the target term
type TargetOverpaymentResponse struct {
	Overpayment string `json:"overpayment"`
}

func (r LoanTermsRequest) parse(p *decimalParser) domain.LoanTerms {
	return domain.LoanTerms{
		Principal:         p.parse("principal", r.Principal, true),
		AnnualRatePercent: p.parse("annualRate", r.AnnualRate, true),
		TermMonths:        r.TermMonths,
	}
}

// FixedPayment handles POST /api/v1/plan/payment
// @Summary Fixed monthly payment
// @Description Returns the payment that clears the principal over the term with no overpayment
// @Tags plan
// @Accept json
// @Produce json
// @Param request body LoanTermsRequest true "Loan terms"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} ProblemDetails
// @Router /plan/payment [post]
func (h *PlanHandler) FixedPayment(c echo.Context) error {
	var req LoanTermsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	terms := req.parse(&p)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	payment, err := h.planService.FixedPayment(terms)
	if err != nil {
		return handleServiceError(c, err, "calculate payment")
	}
	return c.JSON(http.StatusOK, PaymentResponse{Payment: payment.StringFixed(2)})
}

// Simulate handles POST /api/v1/plan/simulate
// @Summary Simulate a payoff schedule
// @Description Pays the principal down month by month with an explicit payment
// @Tags plan
// @Accept json
// @Produce json
// @Param request body SimulateRequest true "Principal, rate and payment"
// @Success 200 {object} AmortizationResponse
// @Failure 400 {object} ProblemDetails
// @Router /plan/simulate [post]
func (h *PlanHandler) Simulate(c echo.Context) error {
	var req SimulateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	input := service.SimulateInput{
		Principal:         p.parse("principal", req.Principal, true),
		AnnualRatePercent: p.parse("annualRate", req.AnnualRate, true),
		Payment:           p.parse("payment", req.Payment, true),
		CeilingMonths:     req.CeilingMonths,
	}
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	result, err := h.planService.Simulate(input)
	if err != nil {
		return handleServiceError(c, err, "simulate schedule")
	}
	return c.JSON(http.StatusOK, toAmortizationResponse(result, true))
}

// Compare handles POST /api/v1/plan/compare
// @Summary Compare with and without overpayment
// @Tags plan
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Loan terms and monthly overpayment"
// @Success 200 {object} ComparisonResponse
// @Failure 400 {object} ProblemDetails
// @Router /plan/compare [post]
func (h *PlanHandler) Compare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	terms := req.LoanTermsRequest.parse(&p)
	overpay := p.parse("overpay", req.Overpay, false)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	comparison, err := h.planService.Compare(terms, overpay)
	if err != nil {
		return handleServiceError(c, err, "compare scenarios")
	}
	return c.JSON(http.StatusOK, toComparisonResponse(comparison, req.IncludeSchedule))
}

// TargetOverpayment handles POST /api/v1/plan/target-overpayment
// @Summary Overpayment for a target term
// @Description Extra monthly payment needed to clear the loan in targetTermMonths; zero when the target is not shorter
// @Tags plan
// @Accept json
// @Produce json
// @Param request body TargetOverpaymentRequest true "Loan terms and target term"
// @Success 200 {object} TargetOverpaymentResponse
// @Failure 400 {object} ProblemDetails
// @Router /plan/target-overpayment [post]
func (h *PlanHandler) TargetOverpayment(c echo.Context) error {
	var req TargetOverpaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	terms := req.LoanTermsRequest.parse(&p)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}
	if req.TargetTermMonths <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetTermMonths", Message: "Must be at least 1 month"},
		})
	}

	extra, err := h.planService.TargetOverpayment(terms, req.TargetTermMonths)
	if err != nil {
		return handleServiceError(c, err, "calculate target overpayment")
	}
	return c.JSON(http.StatusOK, TargetOverpaymentResponse{Overpayment: extra.StringFixed(2)})
}
