package models

import "time"

// IncomeRecord is a payment received against exactly one bill.
type IncomeRecord struct {
	ID          string    `db:"id" json:"id"`
	BillID      string    `db:"bill_id" json:"bill_id"`
	Date        time.Time `db:"date" json:"date"`
	Amount      int64     `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IncomeDetail enriches an income record with its bill and student, when they still exist.
type IncomeDetail struct {
	IncomeRecord
	BillDescription *string `db:"bill_description" json:"bill_description,omitempty"`
	StudentID       *string `db:"student_id" json:"student_id,omitempty"`
	StudentName     *string `db:"student_name" json:"student_name,omitempty"`
}

// LedgerFilter filters income or expense records by date range and category.
type LedgerFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Search   string
	Page     int
	PageSize int
}
