package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/pkg/database"
)

// BillingTx exposes the writes that have to commit together: student
// registration with its first bill, payment recording and cancellation, and
// the student deletion cascade. Lookups return sql.ErrNoRows when absent.
type BillingTx interface {
	CreateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id string) (int64, error)

	CreateBill(ctx context.Context, bill *models.Bill) error
	LockBill(ctx context.Context, id string) (*models.Bill, error)
	SetBillStatus(ctx context.Context, id string, status models.BillStatus) error
	ListBillIDsByStudent(ctx context.Context, studentID string) ([]string, error)
	DeleteBillsByIDs(ctx context.Context, ids []string) (int64, error)

	FindIncomeByBillID(ctx context.Context, billID string) (*models.IncomeRecord, error)
	LockIncome(ctx context.Context, id string) (*models.IncomeRecord, error)
	CreateIncome(ctx context.Context, record *models.IncomeRecord) error
	DeleteIncome(ctx context.Context, id string) error
	DeleteIncomesByBillIDs(ctx context.Context, billIDs []string) (int64, error)
}

// BillingUnitOfWork opens transactions over the billing tables.
type BillingUnitOfWork struct {
	db *sqlx.DB
}

// NewBillingUnitOfWork constructs a BillingUnitOfWork.
func NewBillingUnitOfWork(db *sqlx.DB) *BillingUnitOfWork {
	return &BillingUnitOfWork{db: db}
}

// Do runs fn with a BillingTx bound to one transaction. Returning an error
// from fn rolls every write back.
func (u *BillingUnitOfWork) Do(ctx context.Context, fn func(tx BillingTx) error) error {
	return database.WithTx(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(&billingTx{tx: tx})
	})
}

type billingTx struct {
	tx *sqlx.Tx
}

func (t *billingTx) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, registration_number, name, gender, birth_date, address, phone, guardian_name, tuition_amount, class_id, created_at, updated_at)
        VALUES (:id, :registration_number, :name, :gender, :birth_date, :address, :phone, :guardian_name, :tuition_amount, :class_id, :created_at, :updated_at)`
	if _, err := t.tx.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (t *billingTx) DeleteStudent(ctx context.Context, id string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	return res.RowsAffected()
}

func (t *billingTx) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Status == "" {
		bill.Status = models.BillStatusUnpaid
	}
	const query = `INSERT INTO bills (id, student_id, description, amount, due_date, status, created_at, updated_at)
        VALUES (:id, :student_id, :description, :amount, :due_date, :status, :created_at, :updated_at)`
	if _, err := t.tx.NamedExecContext(ctx, query, bill); err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (t *billingTx) LockBill(ctx context.Context, id string) (*models.Bill, error) {
	const query = `SELECT id, student_id, description, amount, due_date, status, created_at, updated_at FROM bills WHERE id = $1 FOR UPDATE`
	var bill models.Bill
	if err := t.tx.GetContext(ctx, &bill, query, id); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (t *billingTx) SetBillStatus(ctx context.Context, id string, status models.BillStatus) error {
	const query = `UPDATE bills SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := t.tx.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("set bill status: %w", err)
	}
	return nil
}

func (t *billingTx) ListBillIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	if err := t.tx.SelectContext(ctx, &ids, `SELECT id FROM bills WHERE student_id = $1 FOR UPDATE`, studentID); err != nil {
		return nil, fmt.Errorf("list student bills: %w", err)
	}
	return ids, nil
}

func (t *billingTx) DeleteBillsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := t.tx.ExecContext(ctx, `DELETE FROM bills WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("delete bills: %w", err)
	}
	return res.RowsAffected()
}

func (t *billingTx) FindIncomeByBillID(ctx context.Context, billID string) (*models.IncomeRecord, error) {
	const query = `SELECT id, bill_id, date, amount, description, category, created_at, updated_at FROM income_records WHERE bill_id = $1`
	var record models.IncomeRecord
	if err := t.tx.GetContext(ctx, &record, query, billID); err != nil {
		return nil, err
	}
	return &record, nil
}

func (t *billingTx) LockIncome(ctx context.Context, id string) (*models.IncomeRecord, error) {
	const query = `SELECT id, bill_id, date, amount, description, category, created_at, updated_at FROM income_records WHERE id = $1 FOR UPDATE`
	var record models.IncomeRecord
	if err := t.tx.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

func (t *billingTx) CreateIncome(ctx context.Context, record *models.IncomeRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO income_records (id, bill_id, date, amount, description, category, created_at, updated_at)
        VALUES (:id, :bill_id, :date, :amount, :description, :category, :created_at, :updated_at)`
	if _, err := t.tx.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create income record: %w", err)
	}
	return nil
}

func (t *billingTx) DeleteIncome(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM income_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete income record: %w", err)
	}
	return nil
}

func (t *billingTx) DeleteIncomesByBillIDs(ctx context.Context, billIDs []string) (int64, error) {
	if len(billIDs) == 0 {
		return 0, nil
	}
	res, err := t.tx.ExecContext(ctx, `DELETE FROM income_records WHERE bill_id = ANY($1)`, pq.Array(billIDs))
	if err != nil {
		return 0, fmt.Errorf("delete student income records: %w", err)
	}
	return res.RowsAffected()
}
