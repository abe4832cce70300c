package models

import "time"

// BillStatus is the persisted payment state of a bill. BillStatusOverdue is
// derived at read time and never stored.
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "UNPAID"
	BillStatusPaid    BillStatus = "PAID"
	BillStatusOverdue BillStatus = "OVERDUE"
)

// Bill is a charge owed by a student.
type Bill struct {
	ID          string     `db:"id" json:"id"`
	StudentID   string     `db:"student_id" json:"student_id"`
	Description string     `db:"description" json:"description"`
	Amount      int64      `db:"amount" json:"amount"`
	DueDate     time.Time  `db:"due_date" json:"due_date"`
	Status      BillStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayStatus returns OVERDUE for unpaid bills whose due date lies strictly
// before today's calendar date; otherwise the stored status.
func (b Bill) DisplayStatus(today time.Time) BillStatus {
	if b.Status == BillStatusUnpaid && DateOnly(b.DueDate).Before(DateOnly(today)) {
		return BillStatusOverdue
	}
	return b.Status
}

// BillDetail joins a bill with its student, class and payment link.
type BillDetail struct {
	Bill
	StudentName    string     `db:"student_name" json:"student_name"`
	ClassID        string     `db:"class_id" json:"class_id"`
	ClassName      string     `db:"class_name" json:"class_name"`
	IncomeRecordID *string    `db:"income_record_id" json:"income_record_id,omitempty"`
	DisplayStatus  BillStatus `db:"-" json:"display_status"`
}

// BillFilter captures list criteria. Today anchors the OVERDUE filter.
type BillFilter struct {
	StudentID string
	ClassID   string
	Status    BillStatus
	DueFrom   *time.Time
	DueTo     *time.Time
	Search    string
	Today     time.Time
	Page      int
	PageSize  int
}

// DateOnly strips the clock from t while keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns [first day of t's month, first day of the next month).
func MonthWindow(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
