package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type categoryRepository interface {
	List(ctx context.Context, categoryType models.CategoryType) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name string              `json:"name" validate:"required,min=2,max=100"`
	Type models.CategoryType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

// CategoryService manages bookkeeping labels.
type CategoryService struct {
	repo      categoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(repo categoryRepository, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, validator: validate, logger: logger}
}

// List returns categories, optionally of a single type.
func (s *CategoryService) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	t := models.CategoryType(strings.ToUpper(strings.TrimSpace(categoryType)))
	if t != "" && t != models.CategoryIncome && t != models.CategoryExpense {
		return nil, appErrors.Clone(appErrors.ErrValidation, "type must be INCOME or EXPENSE")
	}
	categories, err := s.repo.List(ctx, t)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list categories")
	}
	return categories, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}
	category := &models.Category{Name: name, Type: req.Type}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, appErrors.Internal(err, "failed to create category")
	}
	return category, nil
}

// Update renames or retypes a category.
func (s *CategoryService) Update(ctx context.Context, id string, req CategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category")
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureUniqueName(ctx, name, id); err != nil {
		return nil, err
	}
	category.Name = name
	category.Type = req.Type
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, appErrors.Internal(err, "failed to update category")
	}
	return category, nil
}

// Delete removes a category. Records keep the label they were saved with.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete category")
	}
	return nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check category name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "category name already exists")
	}
	return nil
}
