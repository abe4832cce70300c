package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	ExistsByRegistrationNumber(ctx context.Context, number string, excludeID string) (bool, error)
	ExistingRegistrationNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error)
	Update(ctx context.Context, student *models.Student) error
}

type studentClassLookup interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// StudentRequest holds the registration form shared by create, update and import.
type StudentRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	Name               string `json:"name" validate:"required,min=2"`
	Gender             string `json:"gender" validate:"required,oneof=L P"`
	BirthDate          string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Address            string `json:"address"`
	Phone              string `json:"phone" validate:"omitempty,max=30"`
	GuardianName       string `json:"guardian_name"`
	TuitionAmount      int64  `json:"tuition_amount" validate:"required,gt=0"`
	ClassID            string `json:"class_id" validate:"required"`
}

// ImportStudentsRequest registers many students at once.
type ImportStudentsRequest struct {
	Students []StudentRequest `json:"students" validate:"required,min=1,dive"`
}

// StudentService handles student registration and the deletion cascade.
type StudentService struct {
	repo      studentRepository
	classes   studentClassLookup
	uow       billingUnitOfWork
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	opts      BillingOptions
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, classes studentClassLookup, uow billingUnitOfWork, cache cacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts BillingOptions) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &StudentService{
		repo:      repo,
		classes:   classes,
		uow:       uow,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		opts:      opts.normalized(),
		now:       time.Now,
	}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list students")
	}
	return students, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a student with the class name.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	return student, nil
}

// Create registers a student together with the first tuition bill.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := toStudent(req)
	if err != nil {
		return nil, err
	}
	class, err := s.classes.FindByID(ctx, student.ClassID)
	if err != nil {
		return nil, lookupError(err, "class")
	}
	exists, err := s.repo.ExistsByRegistrationNumber(ctx, student.RegistrationNumber, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check registration number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already exists")
	}

	today := s.today()
	if err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		if err := tx.CreateStudent(ctx, student); err != nil {
			return err
		}
		return tx.CreateBill(ctx, initialBill(student, today, s.opts))
	}); err != nil {
		return nil, txError(err, "failed to create student")
	}

	s.metrics.RecordBillsCreated("enrollment", 1, 0)
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return &models.StudentDetail{Student: *student, ClassName: class.Name}, nil
}

// Import registers every row whose registration number is new, each with its
// initial bill, inside one transaction. Duplicates are reported, not failed.
func (s *StudentService) Import(ctx context.Context, req ImportStudentsRequest) (*dto.StudentImportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	numbers := make([]string, 0, len(req.Students))
	for _, row := range req.Students {
		numbers = append(numbers, strings.TrimSpace(row.RegistrationNumber))
	}
	existing, err := s.repo.ExistingRegistrationNumbers(ctx, numbers)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check registration numbers")
	}

	knownClasses := make(map[string]struct{})
	result := &dto.StudentImportResult{Skipped: []string{}}
	pending := make([]*models.Student, 0, len(req.Students))
	for _, row := range req.Students {
		student, err := toStudent(row)
		if err != nil {
			return nil, err
		}
		if _, dup := existing[student.RegistrationNumber]; dup {
			result.Skipped = append(result.Skipped, student.RegistrationNumber)
			continue
		}
		if _, ok := knownClasses[student.ClassID]; !ok {
			if _, err := s.classes.FindByID(ctx, student.ClassID); err != nil {
				return nil, lookupError(err, "class "+student.ClassID)
			}
			knownClasses[student.ClassID] = struct{}{}
		}
		existing[student.RegistrationNumber] = struct{}{}
		pending = append(pending, student)
	}
	result.SkippedCount = len(result.Skipped)

	if len(pending) > 0 {
		today := s.today()
		if err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
			for _, student := range pending {
				if err := tx.CreateStudent(ctx, student); err != nil {
					return err
				}
				if err := tx.CreateBill(ctx, initialBill(student, today, s.opts)); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return nil, txError(err, "failed to import students")
		}
		s.metrics.RecordBillsCreated("enrollment", len(pending), 0)
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	result.CreatedCount = len(pending)

	s.logger.Info("students imported", zap.Int("created", result.CreatedCount), zap.Int("skipped", result.SkippedCount))
	return result, nil
}

// Update modifies a student. Existing bills keep their amounts.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	student, err := toStudent(req)
	if err != nil {
		return nil, err
	}
	class, err := s.classes.FindByID(ctx, student.ClassID)
	if err != nil {
		return nil, lookupError(err, "class")
	}
	if student.RegistrationNumber != current.RegistrationNumber {
		exists, err := s.repo.ExistsByRegistrationNumber(ctx, student.RegistrationNumber, id)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check registration number")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already exists")
		}
	}

	student.ID = id
	student.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Internal(err, "failed to update student")
	}
	return &models.StudentDetail{Student: *student, ClassName: class.Name}, nil
}

// Delete removes a student with every bill and payment record they own.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	var bills, incomes int64
	err := s.uow.Do(ctx, func(tx repository.BillingTx) error {
		billIDs, err := tx.ListBillIDsByStudent(ctx, id)
		if err != nil {
			return err
		}
		if incomes, err = tx.DeleteIncomesByBillIDs(ctx, billIDs); err != nil {
			return err
		}
		if bills, err = tx.DeleteBillsByIDs(ctx, billIDs); err != nil {
			return err
		}
		affected, err := tx.DeleteStudent(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil
	})
	if err != nil {
		return txError(err, "failed to delete student")
	}

	s.logger.Info("student deleted", zap.String("student_id", id), zap.Int64("bills", bills), zap.Int64("income_records", incomes))
	s.cache.Invalidate(ctx, dashboardCachePattern)
	return nil
}

func (s *StudentService) today() time.Time {
	return models.DateOnly(s.now().In(s.opts.Location))
}

func toStudent(req StudentRequest) (*models.Student, error) {
	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	return &models.Student{
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Name:               strings.TrimSpace(req.Name),
		Gender:             req.Gender,
		BirthDate:          birth,
		Address:            strings.TrimSpace(req.Address),
		Phone:              strings.TrimSpace(req.Phone),
		GuardianName:       strings.TrimSpace(req.GuardianName),
		TuitionAmount:      req.TuitionAmount,
		ClassID:            req.ClassID,
	}, nil
}
