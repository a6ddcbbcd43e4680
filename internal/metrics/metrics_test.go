package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSimulation(t *testing.T) {
	m := New()

	m.ObserveSimulation("compare", &domain.AmortizationResult{Outcome: domain.OutcomeConverged, MonthsToClear: 300})
	m.ObserveSimulation("compare", &domain.AmortizationResult{
		Outcome:       domain.OutcomeDidNotConverge,
		MonthsToClear: 1200,
		Correction:    &domain.PaymentCorrection{RequestedPayment: decimal.Zero, SubstitutedPayment: decimal.NewFromInt(834)},
	})
	m.ObserveSimulation("simulate", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues("compare", "converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues("compare", "did_not_converge")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues("simulate", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.corrections))
}

func TestObserveSettingsSave(t *testing.T) {
	m := New()

	m.ObserveSettingsSave(nil)
	m.ObserveSettingsSave(domain.ValidationErrors{{Field: "rate", Message: "Must be between 0 and 100"}})
	m.ObserveSettingsSave(errors.New("disk full"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.settingsSaves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settingsSaves.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settingsSaves.WithLabelValues("error")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	m.RegisterGauge("websocket_clients", "Connected websocket clients.", func() float64 { return 3 })

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/settings", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/settings", "204")))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mortgagefree_http_requests_total")
	assert.Contains(t, string(body), "mortgagefree_websocket_clients 3")
}
