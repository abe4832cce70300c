package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/middleware"
	"github.com/noah-isme/tk-admin-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, month string) (*dto.DashboardSummary, bool, error)
}

// DashboardHandler wires the dashboard service to HTTP.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Counts, monthly cash flow, the last six months of income and expense, bill arrears and recent payments.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM). Defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), strings.TrimSpace(c.Query("month")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}
