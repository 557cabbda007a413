package service

import (
	"time"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// lowStockThreshold flags products that are close to selling out
const lowStockThreshold = 5

// AnalyticsInput is the optional scope for a report: a single store owned
// by the caller, or all of the caller's stores when StoreID is nil.
type AnalyticsInput struct {
	StoreID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// AnalyticsReport matches the dashboard's analytics payload
type AnalyticsReport struct {
	TotalSales         decimal.Decimal          `json:"total_sales"`
	TotalOrders        int64                    `json:"total_orders"`
	OrderStatusCount   []repository.StatusCount `json:"order_status_count"`
	CustomerCount      int64                    `json:"customer_count"`
	NewCustomers       int64                    `json:"new_customers"`
	TopSellingProducts []repository.TopProduct  `json:"top_selling_products"`
	LowStockProducts   []model.Product          `json:"low_stock_products"`
	SalesGrowth        decimal.Decimal          `json:"sales_growth"`
	Sales              []repository.StoreSales  `json:"sales"`
}

type AnalyticsService interface {
	Report(ownerID uuid.UUID, input AnalyticsInput) (*AnalyticsReport, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	storeRepo     repository.StoreRepository
	now           func() time.Time
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, storeRepo repository.StoreRepository) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		storeRepo:     storeRepo,
		now:           time.Now,
	}
}

func (s *analyticsService) Report(ownerID uuid.UUID, input AnalyticsInput) (*AnalyticsReport, error) {
	// Resolve the tenant scope first: data is never attributed to a store
	// the caller does not own.
	var storeIDs []uuid.UUID
	if input.StoreID != nil {
		owned, err := s.storeRepo.OwnedBy(*input.StoreID, ownerID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
		}
		if !owned {
			return nil, apperr.New(apperr.NotFound, "Store not found")
		}
		storeIDs = []uuid.UUID{*input.StoreID}
	} else {
		ids, err := s.storeRepo.IDsByOwner(ownerID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
		}
		storeIDs = ids
	}

	report := &AnalyticsReport{
		TotalSales:  decimal.Zero,
		SalesGrowth: decimal.Zero,
	}
	if len(storeIDs) == 0 {
		return report, nil
	}

	filter := repository.AnalyticsFilter{
		StoreIDs:  storeIDs,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	var err error
	if report.TotalSales, err = s.analyticsRepo.TotalSales(filter); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.TotalOrders, err = s.analyticsRepo.OrderCount(filter); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.OrderStatusCount, err = s.analyticsRepo.StatusCounts(filter); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.CustomerCount, err = s.analyticsRepo.CustomerCount(storeIDs); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.NewCustomers, err = s.analyticsRepo.NewCustomerCount(filter); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.TopSellingProducts, err = s.analyticsRepo.TopProducts(filter, 5); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	if report.LowStockProducts, err = s.analyticsRepo.LowStockProducts(storeIDs, lowStockThreshold); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}

	// Month-over-month delta: current calendar month vs the trailing month
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthAgo := now.AddDate(0, -1, 0)

	currentMonth, err := s.analyticsRepo.SalesBetween(storeIDs, monthStart, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	lastMonth, err := s.analyticsRepo.SalesBetween(storeIDs, monthAgo, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}
	report.SalesGrowth = currentMonth.Sub(lastMonth)

	if report.Sales, err = s.analyticsRepo.SalesByStore(filter); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch analytics data", err)
	}

	return report, nil
}
