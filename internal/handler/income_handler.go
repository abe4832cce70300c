package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/response"
)

// IncomeHandler exposes recorded payments.
type IncomeHandler struct {
	payments *service.PaymentService
}

// NewIncomeHandler constructs IncomeHandler.
func NewIncomeHandler(payments *service.PaymentService) *IncomeHandler {
	return &IncomeHandler{payments: payments}
}

// List godoc
// @Summary List income records
// @Tags Incomes
// @Produce json
// @Security BearerAuth
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Param category query string false "Category"
// @Param search query string false "Search description"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	filter, err := ledgerFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	records, pagination, err := h.payments.ListIncomes(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Get godoc
// @Summary Get income record
// @Tags Incomes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Income record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	record, err := h.payments.GetIncome(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Cancel godoc
// @Summary Cancel payment
// @Description Deletes the income record and returns its bill to UNPAID.
// @Tags Incomes
// @Security BearerAuth
// @Param id path string true "Income record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /incomes/{id} [delete]
func (h *IncomeHandler) Cancel(c *gin.Context) {
	if err := h.payments.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	response.NoContent(c)
}
