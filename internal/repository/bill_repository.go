package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
)

const billDetailSelect = `SELECT b.id, b.student_id, b.description, b.amount, b.due_date, b.status, b.created_at, b.updated_at,
        s.name AS student_name, s.class_id, c.name AS class_name, i.id AS income_record_id
        FROM bills b
        JOIN students s ON s.id = b.student_id
        JOIN classes c ON c.id = s.class_id
        LEFT JOIN income_records i ON i.bill_id = b.id`

// BillRepository handles bill reads and the single-row writes that need no transaction.
type BillRepository struct {
	db *sqlx.DB
}

// NewBillRepository constructs a BillRepository.
func NewBillRepository(db *sqlx.DB) *BillRepository {
	return &BillRepository{db: db}
}

// List returns bills matching the filter along with the total count.
func (r *BillRepository) List(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, int, error) {
	where, args := billConditions(filter)

	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * size

	query := fmt.Sprintf("%s WHERE %s ORDER BY b.due_date DESC, s.name ASC LIMIT %d OFFSET %d", billDetailSelect, where, size, offset)
	var bills []models.BillDetail
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bills: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bills b JOIN students s ON s.id = b.student_id WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bills: %w", err)
	}
	return bills, total, nil
}

// ListAll returns every bill matching the filter without pagination, for exports.
func (r *BillRepository) ListAll(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, error) {
	where, args := billConditions(filter)
	query := fmt.Sprintf("%s WHERE %s ORDER BY c.name ASC, s.name ASC, b.due_date ASC", billDetailSelect, where)
	var bills []models.BillDetail
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("list bills for export: %w", err)
	}
	return bills, nil
}

func billConditions(filter models.BillFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("b.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	switch filter.Status {
	case models.BillStatusPaid, models.BillStatusUnpaid:
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	case models.BillStatusOverdue:
		conditions = append(conditions, fmt.Sprintf("b.status = $%d AND b.due_date < $%d", len(args)+1, len(args)+2))
		args = append(args, models.BillStatusUnpaid, models.DateOnly(filter.Today))
	}
	if filter.DueFrom != nil {
		conditions = append(conditions, fmt.Sprintf("b.due_date >= $%d", len(args)+1))
		args = append(args, *filter.DueFrom)
	}
	if filter.DueTo != nil {
		conditions = append(conditions, fmt.Sprintf("b.due_date <= $%d", len(args)+1))
		args = append(args, *filter.DueTo)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(b.description) LIKE $%d OR LOWER(s.name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	return strings.Join(conditions, " AND "), args
}

// FindByID returns a bill with its joined student, class and payment link.
func (r *BillRepository) FindByID(ctx context.Context, id string) (*models.BillDetail, error) {
	var bill models.BillDetail
	if err := r.db.GetContext(ctx, &bill, billDetailSelect+" WHERE b.id = $1", id); err != nil {
		return nil, err
	}
	return &bill, nil
}

// BilledStudentIDs returns the students among studentIDs that already hold a
// bill with exactly this description and a due date in [from, to).
func (r *BillRepository) BilledStudentIDs(ctx context.Context, description string, from, to time.Time, studentIDs []string) (map[string]struct{}, error) {
	billed := make(map[string]struct{})
	if len(studentIDs) == 0 {
		return billed, nil
	}
	const query = `SELECT DISTINCT student_id FROM bills WHERE description = $1 AND due_date >= $2 AND due_date < $3 AND student_id = ANY($4)`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, description, from, to, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("find billed students: %w", err)
	}
	for _, id := range ids {
		billed[id] = struct{}{}
	}
	return billed, nil
}

// Update writes the editable fields of an unpaid bill. The guard in the WHERE
// clause keeps a concurrently paid bill untouched; the returned count is 0 then.
func (r *BillRepository) Update(ctx context.Context, bill *models.Bill) (int64, error) {
	bill.UpdatedAt = time.Now().UTC()
	const query = `UPDATE bills SET description = $2, amount = $3, due_date = $4, updated_at = $5
        WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM income_records WHERE bill_id = $1)`
	res, err := r.db.ExecContext(ctx, query, bill.ID, bill.Description, bill.Amount, bill.DueDate, bill.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("update bill: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes a bill that has no linked payment. The returned count is 0
// when the bill is missing or was paid in the meantime.
func (r *BillRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM bills WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM income_records WHERE bill_id = $1)`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete bill: %w", err)
	}
	return res.RowsAffected()
}

// Summary counts unpaid and overdue bills relative to today.
func (r *BillRepository) Summary(ctx context.Context, today time.Time) (*dto.BillSummary, error) {
	const query = `SELECT
        COUNT(*) FILTER (WHERE status = 'UNPAID') AS unpaid_count,
        COALESCE(SUM(amount) FILTER (WHERE status = 'UNPAID'), 0) AS unpaid_amount,
        COUNT(*) FILTER (WHERE status = 'UNPAID' AND due_date < $1) AS overdue_count
        FROM bills`
	var summary dto.BillSummary
	if err := r.db.GetContext(ctx, &summary, query, models.DateOnly(today)); err != nil {
		return nil, fmt.Errorf("summarise bills: %w", err)
	}
	return &summary, nil
}
