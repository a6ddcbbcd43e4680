package domain

import "errors"

// ErrInvalidInput marks caller input the service rejected
var ErrInvalidInput = errors.New("invalid input")

// Amortization errors
var (
	ErrInvalidTerm        = errors.New("term must be at least 1 month")
	ErrInvalidPrincipal   = errors.New("principal must not be negative")
	ErrInvalidRate        = errors.New("annual rate must not be negative")
	ErrInvalidOverpayment = errors.New("overpayment must not be negative")
	ErrInvalidPayment     = errors.New("payment must not be negative")
	ErrInvalidCeiling     = errors.New("safety ceiling must be between 1 and 1200 months")
	ErrNonFiniteResult    = errors.New("amount is too large to calculate with")
)

// IsValidationError reports whether err is a caller-input error rather than an internal failure
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrInvalidTerm,
		ErrInvalidPrincipal,
		ErrInvalidRate,
		ErrInvalidOverpayment,
		ErrInvalidPayment,
		ErrInvalidCeiling,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
