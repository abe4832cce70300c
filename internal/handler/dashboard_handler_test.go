package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/middleware"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type fakeDashboardSrv struct {
	summary   *dto.DashboardSummary
	hit       bool
	err       error
	lastMonth string
}

func (f *fakeDashboardSrv) Summary(_ context.Context, month string) (*dto.DashboardSummary, bool, error) {
	f.lastMonth = month
	return f.summary, f.hit, f.err
}

func TestDashboardHandlerSummaryCacheHit(t *testing.T) {
	srv := &fakeDashboardSrv{
		summary: &dto.DashboardSummary{
			Month:         "2024-03",
			TotalStudents: 42,
			IncomeMonth:   500000,
			BillSummary:   dto.BillSummary{UnpaidCount: 3, OverdueCount: 1},
		},
		hit: true,
	}
	h := NewDashboardHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/dashboard?month=2024-03", nil)
	middleware.WithResponseMeta()(c)
	h.Summary(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03", srv.lastMonth)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.EqualValues(t, 42, data["total_students"])
	assert.EqualValues(t, 3, data["unpaid_bills"])
	assert.EqualValues(t, 1, data["overdue_bills"])
}

func TestDashboardHandlerSummaryMiss(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardSrv{summary: &dto.DashboardSummary{Month: "2024-03"}})

	c, rec := newTestContext(http.MethodGet, "/dashboard", nil)
	h.Summary(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, false, decodeEnvelope(t, rec).Meta["cache_hit"])
}

func TestDashboardHandlerSummaryInvalidMonth(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Clone(appErrors.ErrValidation, "month must use YYYY-MM")})

	c, rec := newTestContext(http.MethodGet, "/dashboard?month=March", nil)
	h.Summary(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
