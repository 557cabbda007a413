package repository

import (
	"time"

	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsFilter scopes every aggregation to the caller's stores and an
// optional date range.
type AnalyticsFilter struct {
	StoreIDs  []uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Sales       decimal.Decimal `json:"sales"`
}

type StoreSales struct {
	StoreID uuid.UUID       `json:"store_id"`
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
}

type AnalyticsRepository interface {
	TotalSales(filter AnalyticsFilter) (decimal.Decimal, error)
	OrderCount(filter AnalyticsFilter) (int64, error)
	StatusCounts(filter AnalyticsFilter) ([]StatusCount, error)
	CustomerCount(storeIDs []uuid.UUID) (int64, error)
	NewCustomerCount(filter AnalyticsFilter) (int64, error)
	TopProducts(filter AnalyticsFilter, limit int) ([]TopProduct, error)
	LowStockProducts(storeIDs []uuid.UUID, threshold int) ([]model.Product, error)
	SalesBetween(storeIDs []uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	SalesByStore(filter AnalyticsFilter) ([]StoreSales, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db}
}

func (r *analyticsRepo) orderScope(filter AnalyticsFilter) *gorm.DB {
	query := r.db.Model(&model.Order{}).Where("store_id IN ?", filter.StoreIDs)
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	return query
}

func (r *analyticsRepo) TotalSales(filter AnalyticsFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.orderScope(filter).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepo) OrderCount(filter AnalyticsFilter) (int64, error) {
	var count int64
	err := r.orderScope(filter).Count(&count).Error
	return count, err
}

func (r *analyticsRepo) StatusCounts(filter AnalyticsFilter) ([]StatusCount, error) {
	var results []StatusCount
	err := r.orderScope(filter).
		Select("order_status as status, COUNT(id) as count").
		Group("order_status").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepo) CustomerCount(storeIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).Where("store_id IN ?", storeIDs).Count(&count).Error
	return count, err
}

func (r *analyticsRepo) NewCustomerCount(filter AnalyticsFilter) (int64, error) {
	query := r.db.Model(&model.Customer{}).Where("store_id IN ?", filter.StoreIDs)
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *analyticsRepo) TopProducts(filter AnalyticsFilter, limit int) ([]TopProduct, error) {
	query := r.db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.store_id IN ?", filter.StoreIDs)
	if filter.StartDate != nil {
		query = query.Where("orders.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("orders.created_at <= ?", *filter.EndDate)
	}

	var results []TopProduct
	err := query.
		Select(`order_items.product_id,
			products.name as product_name,
			COALESCE(SUM(order_items.quantity), 0) as quantity,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) as sales`).
		Group("order_items.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepo) LowStockProducts(storeIDs []uuid.UUID, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("store_id IN ? AND stock < ?", storeIDs, threshold).Find(&products).Error
	return products, err
}

func (r *analyticsRepo) SalesBetween(storeIDs []uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Order{}).
		Where("store_id IN ? AND created_at >= ? AND created_at < ?", storeIDs, from, to).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepo) SalesByStore(filter AnalyticsFilter) ([]StoreSales, error) {
	var results []StoreSales
	err := r.orderScope(filter).
		Joins("JOIN stores ON stores.id = orders.store_id").
		Select("orders.store_id, stores.name, COALESCE(SUM(orders.total_price), 0) as total").
		Group("orders.store_id, stores.name").
		Scan(&results).Error
	return results, err
}
