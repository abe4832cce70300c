package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *memoryStore, models.Bill) {
	t.Helper()
	store := newMemoryStore()
	class := store.addClass("TK A")
	student := store.addStudent(class.ID, "Ani", 150000)
	bill := store.addBill(student.ID, "SPP Maret 2024", 150000, date(2024, time.March, 10))

	svc := NewPaymentService(memoryIncomes{store}, store, nil, nil, validator.New(), zap.NewNop(), BillingOptions{})
	svc.now = fixedClock(date(2024, time.March, 8).Add(10 * time.Hour))
	return svc, store, bill
}

func TestPaymentRecordMarksBillPaid(t *testing.T) {
	svc, store, bill := newPaymentFixture(t)

	record, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP Maret"})
	require.NoError(t, err)
	assert.Equal(t, bill.ID, record.BillID)
	assert.Equal(t, "SPP", record.Category)
	assert.Equal(t, date(2024, time.March, 8), record.Date)
	assert.Equal(t, models.BillStatusPaid, store.bills[bill.ID].Status)
	require.Len(t, store.incomes, 1)

	_, err = svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran ganda"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrBusinessRule)
	assert.Len(t, store.incomes, 1)
}

func TestPaymentRecordUsesExplicitDateAndCategory(t *testing.T) {
	svc, _, bill := newPaymentFixture(t)

	record, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 100000, Description: "Cicilan", Category: "Cicilan SPP", Date: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "Cicilan SPP", record.Category)
	assert.Equal(t, date(2024, time.March, 2), record.Date)
	assert.Equal(t, int64(100000), record.Amount)
}

func TestPaymentRecordRejectsStoredPaidStatus(t *testing.T) {
	svc, store, bill := newPaymentFixture(t)
	bill.Status = models.BillStatusPaid
	store.bills[bill.ID] = bill

	_, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrBusinessRule)
	assert.Empty(t, store.incomes)
}

func TestPaymentRecordUnknownBill(t *testing.T) {
	svc, store, _ := newPaymentFixture(t)

	_, err := svc.Record(context.Background(), "missing", RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, store.incomes)
}

func TestPaymentRecordIsAtomic(t *testing.T) {
	svc, store, bill := newPaymentFixture(t)
	store.failOn = "SetBillStatus"

	_, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, store.incomes)
	assert.Equal(t, models.BillStatusUnpaid, store.bills[bill.ID].Status)
}

func TestPaymentCancelRestoresUnpaid(t *testing.T) {
	svc, store, bill := newPaymentFixture(t)
	record, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP"})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), record.ID))
	assert.Empty(t, store.incomes)
	assert.Equal(t, models.BillStatusUnpaid, store.bills[bill.ID].Status)

	_, err = svc.GetIncome(context.Background(), record.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	err = svc.Cancel(context.Background(), record.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	again, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran ulang"})
	require.NoError(t, err)
	assert.NotEqual(t, record.ID, again.ID)
	assert.Equal(t, models.BillStatusPaid, store.bills[bill.ID].Status)
}

func TestPaymentCancelRemovesOrphanRecord(t *testing.T) {
	svc, store, _ := newPaymentFixture(t)
	metrics := NewMetricsService()
	svc.metrics = metrics
	store.incomes["income-orphan"] = models.IncomeRecord{ID: "income-orphan", BillID: "bill-gone", Amount: 150000, Description: "Sisa data", Category: "SPP"}

	require.NoError(t, svc.Cancel(context.Background(), "income-orphan"))
	assert.Empty(t, store.incomes)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.orphansHealed))
}

func TestPaymentCancelRollsBackOnFailure(t *testing.T) {
	svc, store, bill := newPaymentFixture(t)
	record, err := svc.Record(context.Background(), bill.ID, RecordPaymentRequest{Amount: 150000, Description: "Pembayaran SPP"})
	require.NoError(t, err)
	store.failOn = "SetBillStatus"

	err = svc.Cancel(context.Background(), record.ID)
	require.Error(t, err)
	assert.Contains(t, store.incomes, record.ID)
	assert.Equal(t, models.BillStatusPaid, store.bills[bill.ID].Status)
}
