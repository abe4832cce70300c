package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/response"
)

type reportService interface {
	Finance(ctx context.Context, req service.FinanceReportRequest) (*dto.ReportFile, error)
	Bills(ctx context.Context, req service.BillReportRequest) (*dto.ReportFile, error)
}

// ReportHandler streams finance and billing exports.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Finance godoc
// @Summary Finance report
// @Description Income and expense between two dates (inclusive) with the period balance.
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param from query string true "From date (YYYY-MM-DD)"
// @Param to query string true "To date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/finance [get]
func (h *ReportHandler) Finance(c *gin.Context) {
	file, err := h.reports.Finance(c.Request.Context(), service.FinanceReportRequest{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Format: dto.ReportFormat(strings.ToLower(c.Query("format"))),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	attach(c, file)
}

// Bills godoc
// @Summary Bill report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param status query string false "UNPAID, PAID or OVERDUE"
// @Param class_id query string false "Filter by class"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /reports/bills [get]
func (h *ReportHandler) Bills(c *gin.Context) {
	file, err := h.reports.Bills(c.Request.Context(), service.BillReportRequest{
		Status:  c.Query("status"),
		ClassID: c.Query("class_id"),
		Format:  dto.ReportFormat(strings.ToLower(c.Query("format"))),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	attach(c, file)
}

func attach(c *gin.Context, file *dto.ReportFile) {
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
