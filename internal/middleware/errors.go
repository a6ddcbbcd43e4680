package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const errorTypeThrottled = "https://mortgagefree.app/errors/rate-limit"

// throttledResponse is the RFC 7807 body for a rejected request, extended with the
// numbers a planner screen needs to schedule its retry
type throttledResponse struct {
	Type              string `json:"type"`
	Title             string `json:"title"`
	Status            int    `json:"status"`
	Detail            string `json:"detail"`
	Instance          string `json:"instance"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
	LimitPerMinute    int    `json:"limitPerMinute"`
}

func throttled(c echo.Context, retryAfter, perMinute int) error {
	return c.JSON(http.StatusTooManyRequests, throttledResponse{
		Type:   errorTypeThrottled,
		Title:  "Too Many Calculations",
		Status: http.StatusTooManyRequests,
		Detail: fmt.Sprintf("Only %d plan requests a minute are allowed from one address; try again in %ds",
			perMinute, retryAfter),
		Instance:          c.Request().URL.Path,
		RetryAfterSeconds: retryAfter,
		LimitPerMinute:    perMinute,
	})
}
