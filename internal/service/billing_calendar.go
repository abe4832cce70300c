package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"

	// dashboardCachePattern matches every cached dashboard payload.
	dashboardCachePattern = "dash:*"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// BillingOptions configures the school calendar used by billing operations.
type BillingOptions struct {
	Location        *time.Location
	DefaultCategory string
	InitialDueDay   int
}

func (o BillingOptions) normalized() BillingOptions {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if strings.TrimSpace(o.DefaultCategory) == "" {
		o.DefaultCategory = "SPP"
	}
	if o.InitialDueDay < 1 || o.InitialDueDay > 28 {
		o.InitialDueDay = 10
	}
	return o
}

type billingUnitOfWork interface {
	Do(ctx context.Context, fn func(tx repository.BillingTx) error) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

// MonthLabel renders a month the way bill descriptions spell it, e.g. "Maret 2024".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", indonesianMonths[t.Month()-1], t.Year())
}

// initialBill builds the first tuition bill for a newly registered student.
func initialBill(student *models.Student, today time.Time, opts BillingOptions) *models.Bill {
	y, m, _ := today.Date()
	return &models.Bill{
		StudentID:   student.ID,
		Description: fmt.Sprintf("%s %s", opts.DefaultCategory, MonthLabel(today)),
		Amount:      student.TuitionAmount,
		DueDate:     time.Date(y, m, opts.InitialDueDay, 0, 0, 0, 0, time.UTC),
		Status:      models.BillStatusUnpaid,
	}
}

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return parsed, nil
}

func newPagination(page, size, total int) *models.Pagination {
	page, size = models.NormalizePage(page, size)
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

// lookupError maps a repository lookup failure onto NotFound or Internal.
func lookupError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, "failed to load "+entity)
}

// txError keeps typed errors raised inside a unit of work and wraps the rest.
func txError(err error, message string) error {
	var typed *appErrors.Error
	if errors.As(err, &typed) {
		return typed
	}
	return appErrors.Internal(err, message)
}
