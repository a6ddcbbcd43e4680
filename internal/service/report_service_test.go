package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_WriteDashboardPDF(t *testing.T) {
	settings := testutil.SampleSettings()
	settings.Overpay = d("2000")
	planSvc, _ := newPlanServiceWithSettings(settings)
	dashboard, err := planSvc.BuildDashboard(settings, dashboardNow)
	require.NoError(t, err)

	svc := NewReportService()
	svc.now = func() time.Time { return dashboardNow }

	var buf bytes.Buffer
	require.NoError(t, svc.WriteDashboardPDF(&buf, dashboard))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestReportService_RejectsEmptyDashboard(t *testing.T) {
	svc := NewReportService()

	var buf bytes.Buffer
	err := svc.WriteDashboardPDF(&buf, &domain.Dashboard{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, buf.Len())
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999.5", "999.50"},
		{"1055.666", "1,055.67"},
		{"508000", "508,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-2500", "-2,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(d(tt.in)))
		})
	}
}
