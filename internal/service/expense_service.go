package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type expenseRepository interface {
	List(ctx context.Context, filter models.LedgerFilter) ([]models.ExpenseRecord, int, error)
	FindByID(ctx context.Context, id string) (*models.ExpenseRecord, error)
	Create(ctx context.Context, record *models.ExpenseRecord) error
	Update(ctx context.Context, record *models.ExpenseRecord) error
	Delete(ctx context.Context, id string) error
}

// ExpenseRequest is the create/update payload for expenses.
type ExpenseRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=3"`
	Category    string `json:"category" validate:"required"`
}

// ExpenseService records operational spending.
type ExpenseService struct {
	repo      expenseRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(repo expenseRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ExpenseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &ExpenseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns expenses with pagination.
func (s *ExpenseService) List(ctx context.Context, filter models.LedgerFilter) ([]models.ExpenseRecord, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list expenses")
	}
	return records, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one expense.
func (s *ExpenseService) Get(ctx context.Context, id string) (*models.ExpenseRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "expense")
	}
	return record, nil
}

// Create records an expense.
func (s *ExpenseService) Create(ctx context.Context, req ExpenseRequest) (*models.ExpenseRecord, error) {
	record, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Internal(err, "failed to create expense")
	}
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return record, nil
}

// Update replaces an expense's fields.
func (s *ExpenseService) Update(ctx context.Context, id string, req ExpenseRequest) (*models.ExpenseRecord, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "expense")
	}
	record, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	record.ID = current.ID
	record.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, appErrors.Internal(err, "failed to update expense")
	}
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return record, nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "expense")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete expense")
	}
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return nil
}

func (s *ExpenseService) fromRequest(req ExpenseRequest) (*models.ExpenseRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid expense payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &models.ExpenseRecord{
		Date:        date,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}, nil
}
