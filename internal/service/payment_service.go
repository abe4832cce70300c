package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type incomeRepository interface {
	List(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.IncomeDetail, error)
}

// RecordPaymentRequest is the payload for settling a bill. Date defaults to today.
type RecordPaymentRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=3"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// PaymentService reconciles income records with bill status. The income write
// and the status flip always commit in the same transaction.
type PaymentService struct {
	incomes   incomeRepository
	uow       billingUnitOfWork
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	opts      BillingOptions
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(incomes incomeRepository, uow billingUnitOfWork, cache cacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts BillingOptions) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &PaymentService{
		incomes:   incomes,
		uow:       uow,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		opts:      opts.normalized(),
		now:       time.Now,
	}
}

// Record inserts the income record for a bill and marks the bill PAID.
func (s *PaymentService) Record(ctx context.Context, billID string, req RecordPaymentRequest) (*models.IncomeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	date := models.DateOnly(s.now().In(s.opts.Location))
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = s.opts.DefaultCategory
	}

	record := &models.IncomeRecord{
		BillID:      billID,
		Date:        date,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
	}
	err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		bill, err := tx.LockBill(ctx, billID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "bill not found")
			}
			return err
		}
		if _, err := tx.FindIncomeByBillID(ctx, bill.ID); err == nil {
			return appErrors.Clone(appErrors.ErrBusinessRule, "bill already has a payment record")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if bill.Status == models.BillStatusPaid {
			return appErrors.Clone(appErrors.ErrBusinessRule, "bill is already paid")
		}
		if err := tx.CreateIncome(ctx, record); err != nil {
			return err
		}
		return tx.SetBillStatus(ctx, bill.ID, models.BillStatusPaid)
	})
	if err != nil {
		return nil, txError(err, "failed to record payment")
	}

	s.logger.Info("payment recorded", zap.String("bill_id", billID), zap.String("income_id", record.ID), zap.Int64("amount", record.Amount))
	s.metrics.RecordPayment(record.Amount)
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return record, nil
}

// Cancel deletes an income record and returns its bill to UNPAID. A record
// whose bill no longer exists is removed on its own.
func (s *PaymentService) Cancel(ctx context.Context, incomeID string) error {
	orphan := false
	err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		record, err := tx.LockIncome(ctx, incomeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "income record not found")
			}
			return err
		}
		bill, err := tx.LockBill(ctx, record.BillID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := tx.DeleteIncome(ctx, record.ID); err != nil {
			return err
		}
		if bill == nil {
			orphan = true
			return nil
		}
		return tx.SetBillStatus(ctx, bill.ID, models.BillStatusUnpaid)
	})
	if err != nil {
		return txError(err, "failed to cancel payment")
	}

	if orphan {
		s.logger.Warn("removed income record whose bill no longer exists", zap.String("income_id", incomeID))
	} else {
		s.logger.Info("payment cancelled", zap.String("income_id", incomeID))
	}
	s.metrics.RecordPaymentCancelled(orphan)
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return nil
}

// ListIncomes returns income records with pagination.
func (s *PaymentService) ListIncomes(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, *models.Pagination, error) {
	records, total, err := s.incomes.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list income records")
	}
	return records, newPagination(filter.Page, filter.PageSize, total), nil
}

// GetIncome returns one income record.
func (s *PaymentService) GetIncome(ctx context.Context, id string) (*models.IncomeDetail, error) {
	record, err := s.incomes.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "income record")
	}
	return record, nil
}
