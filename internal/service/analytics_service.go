package service

import (
	"context"
	"encoding/json"
	"time"

	"carhub/internal/currency"
	"carhub/internal/dto"
	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = 60 * time.Second
)

// AnalyticsService is the read-only layer over the sale record set. It has no
// write path.
type AnalyticsService interface {
	TotalRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	TotalProfit(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	SalesCount(ctx context.Context, start, end time.Time) (int64, error)
	MonthlyRevenue(ctx context.Context, monthsBack int) ([]dto.MonthlyBucket, error)
	RecentSales(ctx context.Context, limit int) ([]model.Sale, error)
	SalesByPaymentMethod(ctx context.Context) ([]dto.PaymentMethodBucket, error)
	DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error)
}

type analyticsService struct {
	saleRepo    repository.SaleRepository
	vehicleRepo repository.VehicleRepository
	clientRepo  repository.ClientRepository
	settings    SettingsService
	rdb         *redis.Client
	agedDays    int
	// now is swappable in tests so month buckets are deterministic.
	now func() time.Time
}

func NewAnalyticsService(
	saleRepo repository.SaleRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	settings SettingsService,
	rdb *redis.Client,
	agedDays int,
) AnalyticsService {
	return &analyticsService{
		saleRepo:    saleRepo,
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		settings:    settings,
		rdb:         rdb,
		agedDays:    agedDays,
		now:         time.Now,
	}
}

// TotalRevenue sums salePrice over the closed interval. An empty window is
// the decimal zero, never an absent value.
func (s *analyticsService) TotalRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return s.saleRepo.RevenueBetween(ctx, start, end)
}

// TotalProfit sums profit with unset profits counted as zero.
func (s *analyticsService) TotalProfit(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return s.saleRepo.ProfitBetween(ctx, start, end)
}

func (s *analyticsService) SalesCount(ctx context.Context, start, end time.Time) (int64, error) {
	return s.saleRepo.CountBetween(ctx, start, end)
}

// MonthlyRevenue returns a dense trailing calendar-month series, inclusive of
// the current partial month. Months without sales appear with zero values so
// charts keep their continuity.
func (s *analyticsService) MonthlyRevenue(ctx context.Context, monthsBack int) ([]dto.MonthlyBucket, error) {
	if monthsBack < 1 {
		monthsBack = 1
	}
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthsBack - 1), 0)

	rows, err := s.saleRepo.MonthlyRevenueSince(ctx, first)
	if err != nil {
		return nil, persistErr("monthly revenue", err)
	}
	byMonth := make(map[int]repository.MonthlyRevenueRow, len(rows))
	for _, row := range rows {
		byMonth[row.Year*100+row.Month] = row
	}

	buckets := make([]dto.MonthlyBucket, 0, monthsBack)
	for i := 0; i < monthsBack; i++ {
		m := first.AddDate(0, i, 0)
		bucket := dto.MonthlyBucket{
			Label:   m.Format("Jan 2006"),
			Revenue: decimal.Zero,
		}
		if row, ok := byMonth[m.Year()*100+int(m.Month())]; ok {
			bucket.Revenue = row.Revenue
			bucket.Count = row.Count
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// RecentSales returns the latest N sales by sale date; fewer exist, all.
func (s *analyticsService) RecentSales(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit < 1 {
		limit = 10
	}
	return s.saleRepo.Recent(ctx, limit)
}

func (s *analyticsService) SalesByPaymentMethod(ctx context.Context) ([]dto.PaymentMethodBucket, error) {
	rows, err := s.saleRepo.CountByPaymentMethod(ctx)
	if err != nil {
		return nil, persistErr("sales by payment method", err)
	}
	buckets := make([]dto.PaymentMethodBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, dto.PaymentMethodBucket{
			PaymentMethod: string(row.PaymentMethod),
			Count:         row.Count,
		})
	}
	return buckets, nil
}

// DashboardSummary aggregates the dashboard card figures. The result is
// cached briefly in redis; a cache miss or a missing redis client falls
// through to a fresh computation.
func (s *analyticsService) DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached dto.DashboardSummary
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	now := s.now()
	sixMonthsAgo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	available, err := s.vehicleRepo.CountByStatus(ctx, model.StatusAvailable)
	if err != nil {
		return nil, persistErr("count available vehicles", err)
	}
	sold, err := s.vehicleRepo.CountByStatus(ctx, model.StatusSold)
	if err != nil {
		return nil, persistErr("count sold vehicles", err)
	}
	clients, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, persistErr("count clients", err)
	}
	revenue, err := s.saleRepo.RevenueBetween(ctx, sixMonthsAgo, now)
	if err != nil {
		return nil, persistErr("six month revenue", err)
	}
	profit, err := s.saleRepo.ProfitBetween(ctx, sixMonthsAgo, now)
	if err != nil {
		return nil, persistErr("six month profit", err)
	}
	salesCount, err := s.saleRepo.CountBetween(ctx, sixMonthsAgo, now)
	if err != nil {
		return nil, persistErr("six month sales count", err)
	}
	aged, err := s.vehicleRepo.InStockLongerThan(ctx, s.agedDays)
	if err != nil {
		return nil, persistErr("aged inventory", err)
	}
	monthly, err := s.MonthlyRevenue(ctx, 6)
	if err != nil {
		return nil, err
	}

	fmtr := currency.NewFormatter(s.settings.GetValue(ctx, "currency", "MGA"))
	summary := &dto.DashboardSummary{
		AvailableVehicles: available,
		SoldVehicles:      sold,
		TotalClients:      clients,
		RevenueSixMonths:  revenue,
		ProfitSixMonths:   profit,
		SalesSixMonths:    salesCount,
		AgedInventory:     len(aged),
		Currency:          fmtr.Code,
		RevenueFormatted:  fmtr.Format(revenue),
		MonthlyRevenue:    monthly,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("dashboard summary cache write failed")
			}
		}
	}
	return summary, nil
}
