package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tk-admin-api/internal/models"
)

const expenseColumns = `id, date, amount, description, category, created_at, updated_at`

// ExpenseRepository persists operational expenses.
type ExpenseRepository struct {
	db *sqlx.DB
}

// NewExpenseRepository constructs an ExpenseRepository.
func NewExpenseRepository(db *sqlx.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// List returns expenses matching the filter.
func (r *ExpenseRepository) List(ctx context.Context, filter models.LedgerFilter) ([]models.ExpenseRecord, int, error) {
	where, args := ledgerConditions("e", filter)
	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM expense_records e WHERE %s ORDER BY e.date DESC, e.created_at DESC LIMIT %d OFFSET %d", expenseColumns, where, size, offset)
	var records []models.ExpenseRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM expense_records e WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	return records, total, nil
}

// ListAll returns every expense in the filter's range, oldest first.
func (r *ExpenseRepository) ListAll(ctx context.Context, filter models.LedgerFilter) ([]models.ExpenseRecord, error) {
	where, args := ledgerConditions("e", filter)
	var records []models.ExpenseRecord
	query := fmt.Sprintf("SELECT %s FROM expense_records e WHERE %s ORDER BY e.date ASC, e.created_at ASC", expenseColumns, where)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list expenses for export: %w", err)
	}
	return records, nil
}

// FindByID returns a single expense.
func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*models.ExpenseRecord, error) {
	var record models.ExpenseRecord
	if err := r.db.GetContext(ctx, &record, "SELECT "+expenseColumns+" FROM expense_records WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts an expense.
func (r *ExpenseRepository) Create(ctx context.Context, record *models.ExpenseRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO expense_records (id, date, amount, description, category, created_at, updated_at)
        VALUES (:id, :date, :amount, :description, :category, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// Update modifies an expense.
func (r *ExpenseRepository) Update(ctx context.Context, record *models.ExpenseRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE expense_records SET date = :date, amount = :amount, description = :description, category = :category, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expense_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// SumBetween totals expenses dated in [from, to).
func (r *ExpenseRepository) SumBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM expense_records WHERE date >= $1 AND date < $2`, from, to); err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
