package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/middleware"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/testutil"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e         *echo.Echo
	repo      *testutil.MockSettingsRepository
	publisher *testutil.MockEventPublisher
	settings  *service.SettingsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := testutil.NewMockSettingsRepository()
	publisher := testutil.NewMockEventPublisher()

	settingsService := service.NewSettingsService(repo)
	settingsService.SetEventPublisher(publisher)
	planService := service.NewPlanService(settingsService, decimal.NewFromInt(domain.DefaultPenaltyFreePercent))

	rl := middleware.NewRateLimiterWithConfig(1000, 100)
	t.Cleanup(rl.Stop)

	e := echo.New()
	RegisterRoutes(e, rl, Handlers{
		Plan:      NewPlanHandler(planService),
		Dashboard: NewDashboardHandler(planService, service.NewReportService()),
		Settings:  NewSettingsHandler(settingsService),
		WebSocket: NewWebSocketHandler(websocket.NewHub(), testAllowedOrigins),
		OpenAPI:   NewOpenAPIHandler(""),
	})

	return &testServer{e: e, repo: repo, publisher: publisher, settings: settingsService}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func problemFields(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var problem ProblemDetails
	decodeJSON(t, rec, &problem)
	fields := make([]string, len(problem.Errors))
	for i, e := range problem.Errors {
		fields[i] = e.Field
	}
	return fields
}
