package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tk-admin-api/internal/dto"
)

// DashboardRepository runs the aggregate queries behind the dashboard.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// MonthlyTotals returns income and expense per month for [from, to), with
// months that have no records reported as zero.
func (r *DashboardRepository) MonthlyTotals(ctx context.Context, from, to time.Time) ([]dto.MonthlyTotal, error) {
	const query = `WITH months AS (
            SELECT generate_series(date_trunc('month', $1::date), date_trunc('month', $2::date) - INTERVAL '1 month', INTERVAL '1 month') AS month
        ),
        incomes AS (
            SELECT date_trunc('month', date) AS month, SUM(amount) AS total FROM income_records WHERE date >= $1 AND date < $2 GROUP BY 1
        ),
        expenses AS (
            SELECT date_trunc('month', date) AS month, SUM(amount) AS total FROM expense_records WHERE date >= $1 AND date < $2 GROUP BY 1
        )
        SELECT to_char(m.month, 'YYYY-MM') AS month,
            COALESCE(i.total, 0) AS income,
            COALESCE(e.total, 0) AS expense
        FROM months m
        LEFT JOIN incomes i ON i.month = m.month
        LEFT JOIN expenses e ON e.month = m.month
        ORDER BY m.month ASC`
	var totals []dto.MonthlyTotal
	if err := r.db.SelectContext(ctx, &totals, query, from, to); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	return totals, nil
}
