package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tk-admin-api/internal/models"
)

const incomeDetailSelect = `SELECT i.id, i.bill_id, i.date, i.amount, i.description, i.category, i.created_at, i.updated_at,
        b.description AS bill_description, b.student_id, s.name AS student_name
        FROM income_records i
        LEFT JOIN bills b ON b.id = i.bill_id
        LEFT JOIN students s ON s.id = b.student_id`

// IncomeRepository reads payment records. Writes go through BillingTx.
type IncomeRepository struct {
	db *sqlx.DB
}

// NewIncomeRepository constructs an IncomeRepository.
func NewIncomeRepository(db *sqlx.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// List returns income records matching the filter.
func (r *IncomeRepository) List(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, int, error) {
	where, args := ledgerConditions("i", filter)
	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * size

	query := fmt.Sprintf("%s WHERE %s ORDER BY i.date DESC, i.created_at DESC LIMIT %d OFFSET %d", incomeDetailSelect, where, size, offset)
	var records []models.IncomeDetail
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list income records: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM income_records i WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count income records: %w", err)
	}
	return records, total, nil
}

// ListAll returns every income record in the filter's range, oldest first.
func (r *IncomeRepository) ListAll(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, error) {
	where, args := ledgerConditions("i", filter)
	var records []models.IncomeDetail
	if err := r.db.SelectContext(ctx, &records, fmt.Sprintf("%s WHERE %s ORDER BY i.date ASC, i.created_at ASC", incomeDetailSelect, where), args...); err != nil {
		return nil, fmt.Errorf("list income records for export: %w", err)
	}
	return records, nil
}

// FindByID returns a single income record.
func (r *IncomeRepository) FindByID(ctx context.Context, id string) (*models.IncomeDetail, error) {
	var record models.IncomeDetail
	if err := r.db.GetContext(ctx, &record, incomeDetailSelect+" WHERE i.id = $1", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Recent returns the latest payments.
func (r *IncomeRepository) Recent(ctx context.Context, limit int) ([]models.IncomeDetail, error) {
	var records []models.IncomeDetail
	query := fmt.Sprintf("%s ORDER BY i.created_at DESC LIMIT %d", incomeDetailSelect, limit)
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("recent income records: %w", err)
	}
	return records, nil
}

// SumBetween totals income dated in [from, to).
func (r *IncomeRepository) SumBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM income_records WHERE date >= $1 AND date < $2`, from, to); err != nil {
		return 0, fmt.Errorf("sum income: %w", err)
	}
	return total, nil
}

// ledgerConditions builds the WHERE clause shared by income and expense listings.
func ledgerConditions(alias string, filter models.LedgerFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("%s.date >= $%d", alias, len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("%s.date <= $%d", alias, len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("%s.category = $%d", alias, len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s.description) LIKE $%d", alias, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	return strings.Join(conditions, " AND "), args
}
