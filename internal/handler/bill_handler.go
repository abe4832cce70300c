package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/response"
)

type billService interface {
	List(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.BillDetail, error)
	Create(ctx context.Context, req service.CreateBillRequest) (*models.Bill, error)
	BulkCreate(ctx context.Context, req service.BulkBillRequest) (*dto.BulkBillResult, error)
	Update(ctx context.Context, id string, req service.UpdateBillRequest) (*models.BillDetail, error)
	Delete(ctx context.Context, id string) error
}

type paymentRecorder interface {
	Record(ctx context.Context, billID string, req service.RecordPaymentRequest) (*models.IncomeRecord, error)
}

// BillHandler exposes the bill lifecycle and payment recording.
type BillHandler struct {
	bills    billService
	payments paymentRecorder
}

// NewBillHandler constructs BillHandler.
func NewBillHandler(bills billService, payments paymentRecorder) *BillHandler {
	return &BillHandler{bills: bills, payments: payments}
}

// List godoc
// @Summary List bills
// @Description OVERDUE selects unpaid bills due before today; every item carries display_status.
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param student_id query string false "Filter by student"
// @Param class_id query string false "Filter by class"
// @Param status query string false "UNPAID, PAID or OVERDUE"
// @Param due_from query string false "Due on or after (YYYY-MM-DD)"
// @Param due_to query string false "Due on or before (YYYY-MM-DD)"
// @Param search query string false "Search description or student name"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter models.BillFilter
	filter.StudentID = c.Query("student_id")
	filter.ClassID = c.Query("class_id")
	filter.Status = models.BillStatus(strings.TrimSpace(c.Query("status")))
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.PageSize = pageParams(c)
	var err error
	if filter.DueFrom, err = optionalDate(c, "due_from"); err != nil {
		abortWithError(c, err)
		return
	}
	if filter.DueTo, err = optionalDate(c, "due_to"); err != nil {
		abortWithError(c, err)
		return
	}

	bills, pagination, err := h.bills.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bills, pagination)
}

// Get godoc
// @Summary Get bill
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.bills.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bill, nil)
}

// Create godoc
// @Summary Create bill
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateBillRequest true "Bill payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req service.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := h.bills.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Created(c, bill)
}

// BulkCreate godoc
// @Summary Bill a class
// @Description Bills each student of the class (or "all") its tuition amount, skipping students already billed with the same description in the due month.
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.BulkBillRequest true "Bulk payload"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope "Nothing to create"
// @Failure 404 {object} response.Envelope
// @Router /bills/bulk [post]
func (h *BillHandler) BulkCreate(c *gin.Context) {
	var req service.BulkBillRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.bills.BulkCreate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	status := http.StatusCreated
	if result.CreatedCount == 0 {
		status = http.StatusOK
	}
	response.JSON(c, status, result, nil)
}

// Update godoc
// @Summary Update unpaid bill
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param payload body service.UpdateBillRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	var req service.UpdateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := h.bills.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bill, nil)
}

// Delete godoc
// @Summary Delete unpaid bill
// @Tags Bills
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	if err := h.bills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	response.NoContent(c)
}

// RecordPayment godoc
// @Summary Record payment
// @Description Creates the income record and marks the bill PAID atomically.
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bills/{id}/payments [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.payments.Record(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Created(c, record)
}
