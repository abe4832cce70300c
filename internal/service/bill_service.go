package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

// AllClasses selects every student when bulk billing.
const AllClasses = "all"

const paidBillMessage = "cannot modify a bill that has already been paid"

type billRepository interface {
	List(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.BillDetail, error)
	BilledStudentIDs(ctx context.Context, description string, from, to time.Time, studentIDs []string) (map[string]struct{}, error)
	Update(ctx context.Context, bill *models.Bill) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type billStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

// CreateBillRequest is the payload for a single bill.
type CreateBillRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	Description string `json:"description" validate:"required,min=3"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// BulkBillRequest bills every student of a class, or of the school when ClassID is "all".
type BulkBillRequest struct {
	ClassID     string `json:"class_id" validate:"required"`
	Description string `json:"description" validate:"required,min=3"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// UpdateBillRequest carries the editable fields of an unpaid bill.
type UpdateBillRequest struct {
	Description *string `json:"description" validate:"omitempty,min=3"`
	Amount      *int64  `json:"amount" validate:"omitempty,gt=0"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// BillService manages the bill lifecycle.
type BillService struct {
	repo      billRepository
	students  billStudentRepository
	uow       billingUnitOfWork
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	opts      BillingOptions
	now       func() time.Time
}

// NewBillService constructs a BillService.
func NewBillService(repo billRepository, students billStudentRepository, uow billingUnitOfWork, cache cacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts BillingOptions) *BillService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &BillService{
		repo:      repo,
		students:  students,
		uow:       uow,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		opts:      opts.normalized(),
		now:       time.Now,
	}
}

// Today returns the current school calendar date.
func (s *BillService) Today() time.Time {
	return models.DateOnly(s.now().In(s.opts.Location))
}

// List returns bills with their display status.
func (s *BillService) List(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, *models.Pagination, error) {
	filter.Today = s.Today()
	filter.Status = models.BillStatus(strings.ToUpper(string(filter.Status)))
	bills, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list bills")
	}
	for i := range bills {
		bills[i].DisplayStatus = bills[i].Bill.DisplayStatus(filter.Today)
	}
	return bills, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one bill with its display status.
func (s *BillService) Get(ctx context.Context, id string) (*models.BillDetail, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "bill")
	}
	bill.DisplayStatus = bill.Bill.DisplayStatus(s.Today())
	return bill, nil
}

// Create inserts a single UNPAID bill.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*models.Bill, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bill payload")
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return nil, lookupError(err, "student")
	}

	bill := &models.Bill{
		StudentID:   req.StudentID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		DueDate:     due,
		Status:      models.BillStatusUnpaid,
	}
	if err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		return tx.CreateBill(ctx, bill)
	}); err != nil {
		return nil, txError(err, "failed to create bill")
	}

	s.metrics.RecordBillsCreated("single", 1, 0)
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return bill, nil
}

// BulkCreate bills each selected student its tuition amount once per
// description and calendar month. Students already holding a bill with the
// exact description inside the due date's month are skipped.
func (s *BillService) BulkCreate(ctx context.Context, req BulkBillRequest) (*dto.BulkBillResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk bill payload")
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)

	classID := strings.TrimSpace(req.ClassID)
	if strings.EqualFold(classID, AllClasses) {
		classID = ""
	}
	candidates, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load students")
	}
	if len(candidates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no students found to bill")
	}

	ids := make([]string, 0, len(candidates))
	for _, student := range candidates {
		ids = append(ids, student.ID)
	}
	from, to := models.MonthWindow(due)
	// Read outside the insert transaction; concurrent runs for the same month are not serialised.
	billed, err := s.repo.BilledStudentIDs(ctx, description, from, to, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check existing bills")
	}

	pending := make([]*models.Bill, 0, len(candidates))
	alreadyBilled, noTuition := 0, 0
	for _, student := range candidates {
		if _, ok := billed[student.ID]; ok {
			alreadyBilled++
			continue
		}
		if student.TuitionAmount <= 0 {
			noTuition++
			continue
		}
		pending = append(pending, &models.Bill{
			StudentID:   student.ID,
			Description: description,
			Amount:      student.TuitionAmount,
			DueDate:     due,
			Status:      models.BillStatusUnpaid,
		})
	}

	result := &dto.BulkBillResult{SkippedCount: alreadyBilled + noTuition}
	if len(pending) == 0 {
		result.Message = nothingToBillMessage(alreadyBilled, noTuition, MonthLabel(due))
		return result, nil
	}

	if err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		for _, bill := range pending {
			if err := tx.CreateBill(ctx, bill); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, txError(err, "failed to create bills")
	}

	result.CreatedCount = len(pending)
	s.logger.Info("bulk bills created",
		zap.String("description", description),
		zap.String("class_id", req.ClassID),
		zap.Int("created", result.CreatedCount),
		zap.Int("skipped", result.SkippedCount))
	s.metrics.RecordBillsCreated("bulk", result.CreatedCount, result.SkippedCount)
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return result, nil
}

// nothingToBillMessage explains an empty bulk run in the admins' language.
func nothingToBillMessage(alreadyBilled, noTuition int, month string) string {
	switch {
	case noTuition == 0:
		return fmt.Sprintf("Semua siswa terpilih sudah memiliki tagihan ini untuk %s", month)
	case alreadyBilled == 0:
		return fmt.Sprintf("Tidak ada siswa dengan nominal SPP untuk ditagih pada %s", month)
	default:
		return fmt.Sprintf("Tidak ada tagihan baru untuk %s: %d siswa sudah ditagih, %d siswa tanpa nominal SPP", month, alreadyBilled, noTuition)
	}
}

// Update edits an unpaid bill. Paid bills are rejected so the payment record stays consistent.
func (s *BillService) Update(ctx context.Context, id string, req UpdateBillRequest) (*models.BillDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bill payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "bill")
	}
	if current.IncomeRecordID != nil || current.Status == models.BillStatusPaid {
		return nil, appErrors.Clone(appErrors.ErrBusinessRule, paidBillMessage)
	}

	bill := current.Bill
	if req.Description != nil {
		bill.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		bill.DueDate = due
	}

	affected, err := s.repo.Update(ctx, &bill)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to update bill")
	}
	if affected == 0 {
		return nil, s.vanishedOrPaid(ctx, id)
	}
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return s.Get(ctx, id)
}

// Delete removes a bill that has no linked payment.
func (s *BillService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "bill")
	}
	if current.IncomeRecordID != nil {
		return appErrors.Clone(appErrors.ErrBusinessRule, "cannot delete a bill that has already been paid")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to delete bill")
	}
	if affected == 0 {
		return s.vanishedOrPaid(ctx, id)
	}
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return nil
}

// vanishedOrPaid explains a guarded write that touched no row.
func (s *BillService) vanishedOrPaid(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "bill not found")
		}
		return appErrors.Internal(err, "failed to load bill")
	}
	return appErrors.Clone(appErrors.ErrBusinessRule, paidBillMessage)
}
