package dto

import (
	"time"

	"github.com/noah-isme/tk-admin-api/internal/models"
)

// MonthlyTotal aggregates bookkeeping totals for one calendar month.
type MonthlyTotal struct {
	Month   string `db:"month" json:"month"`
	Income  int64  `db:"income" json:"income"`
	Expense int64  `db:"expense" json:"expense"`
}

// BillSummary counts outstanding bills.
type BillSummary struct {
	UnpaidCount  int   `db:"unpaid_count" json:"unpaid_bills"`
	UnpaidAmount int64 `db:"unpaid_amount" json:"unpaid_amount"`
	OverdueCount int   `db:"overdue_count" json:"overdue_bills"`
}

// DashboardSummary is the admin landing page payload.
type DashboardSummary struct {
	Month         string `json:"month"`
	TotalStudents int    `json:"total_students"`
	TotalClasses  int    `json:"total_classes"`
	IncomeMonth   int64  `json:"income_this_month"`
	ExpenseMonth  int64  `json:"expense_this_month"`
	BalanceMonth  int64  `json:"balance_this_month"`
	BillSummary
	Monthly        []MonthlyTotal        `json:"monthly"`
	RecentPayments []models.IncomeDetail `json:"recent_payments"`
	GeneratedAt    time.Time             `json:"generated_at"`
}
