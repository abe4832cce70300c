package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tk-admin-api/internal/models"
)

var billDetailColumns = []string{"id", "student_id", "description", "amount", "due_date", "status", "created_at", "updated_at", "student_name", "class_id", "class_name", "income_record_id"}

func TestBillRepositoryListOverdueFilter(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBillRepository(db)

	today := time.Date(2024, time.March, 11, 15, 30, 0, 0, time.UTC)
	due := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(billDetailColumns).
		AddRow("b-1", "s-1", "SPP Maret 2024", int64(150000), due, "UNPAID", today, today, "Budi", "c-1", "TK A", nil)
	mock.ExpectQuery(regexp.QuoteMeta(billDetailSelect+" WHERE 1=1 AND b.status = $1 AND b.due_date < $2 ORDER BY b.due_date DESC, s.name ASC LIMIT 20 OFFSET 0")).
		WithArgs(models.BillStatusUnpaid, models.DateOnly(today)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bills b JOIN students s ON s.id = b.student_id WHERE 1=1 AND b.status = $1 AND b.due_date < $2")).
		WithArgs(models.BillStatusUnpaid, models.DateOnly(today)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	bills, total, err := repo.List(context.Background(), models.BillFilter{Status: models.BillStatusOverdue, Today: today})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Nil(t, bills[0].IncomeRecordID)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryBilledStudentIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBillRepository(db)

	from, to := models.MonthWindow(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	ids := []string{"s-1", "s-2"}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT student_id FROM bills WHERE description = $1 AND due_date >= $2 AND due_date < $3 AND student_id = ANY($4)")).
		WithArgs("SPP April", from, to, pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow("s-1"))

	billed, err := repo.BilledStudentIDs(context.Background(), "SPP April", from, to, ids)
	require.NoError(t, err)
	assert.Len(t, billed, 1)
	_, ok := billed["s-1"]
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryDeleteSkipsPaidBill(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBillRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bills WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM income_records WHERE bill_id = $1)")).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositorySummary(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBillRepository(db)

	today := time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT\\s+COUNT\\(\\*\\) FILTER").
		WithArgs(models.DateOnly(today)).
		WillReturnRows(sqlmock.NewRows([]string{"unpaid_count", "unpaid_amount", "overdue_count"}).AddRow(4, int64(600000), 1))

	summary, err := repo.Summary(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.UnpaidCount)
	assert.Equal(t, int64(600000), summary.UnpaidAmount)
	assert.Equal(t, 1, summary.OverdueCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
