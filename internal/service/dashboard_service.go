package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

const monthLayout = "2006-01"

type dashboardCounter interface {
	CountAll(ctx context.Context) (int, error)
}

type dashboardLedger interface {
	SumBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type dashboardIncomes interface {
	dashboardLedger
	Recent(ctx context.Context, limit int) ([]models.IncomeDetail, error)
}

type dashboardBills interface {
	Summary(ctx context.Context, today time.Time) (*dto.BillSummary, error)
}

type dashboardTrends interface {
	MonthlyTotals(ctx context.Context, from, to time.Time) ([]dto.MonthlyTotal, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL      time.Duration
	TrendMonths   int
	RecentLimit   int
	Location      *time.Location
	CacheDisabled bool
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students dashboardCounter
	Classes  dashboardCounter
	Incomes  dashboardIncomes
	Expenses dashboardLedger
	Bills    dashboardBills
	Trends   dashboardTrends
	Cache    dashboardCache
	Logger   *zap.Logger
	Config   DashboardServiceConfig
}

// DashboardService composes the finance overview shown after login.
type DashboardService struct {
	students dashboardCounter
	classes  dashboardCounter
	incomes  dashboardIncomes
	expenses dashboardLedger
	bills    dashboardBills
	trends   dashboardTrends
	cache    dashboardCache
	logger   *zap.Logger
	now      func() time.Time
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TrendMonths <= 0 {
		cfg.TrendMonths = 6
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students: params.Students,
		classes:  params.Classes,
		incomes:  params.Incomes,
		expenses: params.Expenses,
		bills:    params.Bills,
		trends:   params.Trends,
		cache:    params.Cache,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// Summary returns the dashboard for month (YYYY-MM, empty for the current
// month) and whether it was served from cache.
func (s *DashboardService) Summary(ctx context.Context, month string) (*dto.DashboardSummary, bool, error) {
	today := models.DateOnly(s.now().In(s.cfg.Location))
	anchor := today
	if month != "" {
		parsed, err := time.Parse(monthLayout, month)
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must use YYYY-MM")
		}
		anchor = parsed
	}
	key := fmt.Sprintf("dash:summary:%s", anchor.Format(monthLayout))

	if s.cacheActive() {
		var cached dto.DashboardSummary
		if s.cache.Get(ctx, key, &cached) {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx, anchor, today)
	if err != nil {
		return nil, false, err
	}
	if s.cacheActive() {
		s.cache.Set(ctx, key, summary, s.cfg.CacheTTL)
	}
	return summary, false, nil
}

func (s *DashboardService) cacheActive() bool {
	return s.cache != nil && !s.cfg.CacheDisabled
}

func (s *DashboardService) compose(ctx context.Context, anchor, today time.Time) (*dto.DashboardSummary, error) {
	from, to := models.MonthWindow(anchor)

	totalStudents, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count students")
	}
	totalClasses, err := s.classes.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count classes")
	}
	income, err := s.incomes.SumBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sum income")
	}
	expense, err := s.expenses.SumBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sum expenses")
	}
	bills, err := s.bills.Summary(ctx, today)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to summarise bills")
	}
	trendFrom := from.AddDate(0, -(s.cfg.TrendMonths - 1), 0)
	monthly, err := s.trends.MonthlyTotals(ctx, trendFrom, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load monthly totals")
	}
	recent, err := s.incomes.Recent(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load recent payments")
	}
	if recent == nil {
		recent = []models.IncomeDetail{}
	}

	return &dto.DashboardSummary{
		Month:          from.Format(monthLayout),
		TotalStudents:  totalStudents,
		TotalClasses:   totalClasses,
		IncomeMonth:    income,
		ExpenseMonth:   expense,
		BalanceMonth:   income - expense,
		BillSummary:    *bills,
		Monthly:        monthly,
		RecentPayments: recent,
		GeneratedAt:    s.now().UTC(),
	}, nil
}
