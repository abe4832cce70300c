package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/service"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type fakeBillService struct {
	lastFilter models.BillFilter
	lastBulk   service.BulkBillRequest
	bulkResult *dto.BulkBillResult
	deleteErr  error
}

func (f *fakeBillService) List(_ context.Context, filter models.BillFilter) ([]models.BillDetail, *models.Pagination, error) {
	f.lastFilter = filter
	return []models.BillDetail{}, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (f *fakeBillService) Get(context.Context, string) (*models.BillDetail, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "bill not found")
}

func (f *fakeBillService) Create(_ context.Context, req service.CreateBillRequest) (*models.Bill, error) {
	return &models.Bill{ID: "bill-1", StudentID: req.StudentID, Amount: req.Amount, Status: models.BillStatusUnpaid}, nil
}

func (f *fakeBillService) BulkCreate(_ context.Context, req service.BulkBillRequest) (*dto.BulkBillResult, error) {
	f.lastBulk = req
	return f.bulkResult, nil
}

func (f *fakeBillService) Update(context.Context, string, service.UpdateBillRequest) (*models.BillDetail, error) {
	return nil, appErrors.Clone(appErrors.ErrBusinessRule, "paid bills cannot be edited")
}

func (f *fakeBillService) Delete(context.Context, string) error {
	return f.deleteErr
}

type fakePaymentRecorder struct {
	billID string
	req    service.RecordPaymentRequest
	err    error
}

func (f *fakePaymentRecorder) Record(_ context.Context, billID string, req service.RecordPaymentRequest) (*models.IncomeRecord, error) {
	f.billID, f.req = billID, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.IncomeRecord{ID: "inc-1", BillID: billID, Amount: 250000, Category: "SPP"}, nil
}

func TestBillHandlerListParsesFilters(t *testing.T) {
	bills := &fakeBillService{}
	h := NewBillHandler(bills, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodGet, "/bills?status=OVERDUE&class_id=cls-1&due_from=2024-03-01&due_to=2024-03-31&page=2&page_size=5", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BillStatusOverdue, bills.lastFilter.Status)
	assert.Equal(t, "cls-1", bills.lastFilter.ClassID)
	require.NotNil(t, bills.lastFilter.DueFrom)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *bills.lastFilter.DueFrom)
	require.NotNil(t, bills.lastFilter.DueTo)
	assert.Equal(t, 2, bills.lastFilter.Page)
	assert.Equal(t, 5, bills.lastFilter.PageSize)
}

func TestBillHandlerListRejectsBadDate(t *testing.T) {
	h := NewBillHandler(&fakeBillService{}, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodGet, "/bills?due_from=03-2024", nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
	assert.Len(t, c.Errors, 1)
}

func TestBillHandlerBulkStatusFollowsCreatedCount(t *testing.T) {
	bills := &fakeBillService{bulkResult: &dto.BulkBillResult{CreatedCount: 3, SkippedCount: 1}}
	h := NewBillHandler(bills, &fakePaymentRecorder{})

	payload := gin.H{"class_id": "all", "description": "SPP Maret 2024", "due_date": "2024-03-10"}
	c, rec := newTestContext(http.MethodPost, "/bills/bulk", payload)
	h.BulkCreate(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "all", bills.lastBulk.ClassID)

	var result dto.BulkBillResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, 3, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)

	bills.bulkResult = &dto.BulkBillResult{SkippedCount: 4, Message: "semua siswa sudah memiliki tagihan"}
	c, rec = newTestContext(http.MethodPost, "/bills/bulk", payload)
	h.BulkCreate(c)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBillHandlerBulkRejectsMalformedJSON(t *testing.T) {
	h := NewBillHandler(&fakeBillService{}, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodPost, "/bills/bulk", nil)
	c.Request.Body = http.NoBody
	h.BulkCreate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillHandlerDeletePaidBill(t *testing.T) {
	h := NewBillHandler(&fakeBillService{deleteErr: appErrors.Clone(appErrors.ErrBusinessRule, "paid bills cannot be deleted")}, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodDelete, "/bills/bill-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "bill-1"}}
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrBusinessRule.Code, envelope.Error.Code)
}

func TestBillHandlerDeleteNoContent(t *testing.T) {
	h := NewBillHandler(&fakeBillService{}, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodDelete, "/bills/bill-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "bill-1"}}
	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBillHandlerGetNotFound(t *testing.T) {
	h := NewBillHandler(&fakeBillService{}, &fakePaymentRecorder{})

	c, rec := newTestContext(http.MethodGet, "/bills/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillHandlerRecordPayment(t *testing.T) {
	payments := &fakePaymentRecorder{}
	h := NewBillHandler(&fakeBillService{}, payments)

	c, rec := newTestContext(http.MethodPost, "/bills/bill-7/payments", gin.H{"amount": 250000, "description": "SPP Maret 2024", "date": "2024-03-05"})
	c.Params = gin.Params{{Key: "id", Value: "bill-7"}}
	h.RecordPayment(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "bill-7", payments.billID)

	var record models.IncomeRecord
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
	assert.Equal(t, "inc-1", record.ID)
}

func TestBillHandlerRecordPaymentOnPaidBill(t *testing.T) {
	payments := &fakePaymentRecorder{err: appErrors.Clone(appErrors.ErrBusinessRule, "bill is already paid")}
	h := NewBillHandler(&fakeBillService{}, payments)

	c, rec := newTestContext(http.MethodPost, "/bills/bill-7/payments", gin.H{})
	c.Params = gin.Params{{Key: "id", Value: "bill-7"}}
	h.RecordPayment(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
