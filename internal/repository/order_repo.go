package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter composes the owner-side order listing query
type OrderFilter struct {
	Page       int
	Limit      int
	StoreIDs   []uuid.UUID // caller's tenant scope
	StoreID    *uuid.UUID
	Status     model.OrderStatus
	CustomerID *uuid.UUID
	Search     string // "#<id>" matches order id exactly, otherwise customer/product text
}

type OrderRepository interface {
	// CreateWithStock persists the order and its items and decrements each
	// product's stock as one atomic unit. Product rows are locked so that
	// concurrent orders against the same product serialize; if any line no
	// longer has enough stock the whole transaction rolls back.
	CreateWithStock(ctx context.Context, order *model.Order) error

	List(filter OrderFilter) ([]model.Order, int64, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByCustomer(customerID uuid.UUID, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	FindCustomerOrder(orderID, customerID uuid.UUID) (*model.Order, error)
	UpdateStatus(id uuid.UUID, status model.OrderStatus) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) CreateWithStock(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock product rows in a stable order so concurrent multi-line
		// orders cannot deadlock against each other.
		quantities := make(map[uuid.UUID]int, len(order.Items))
		for _, item := range order.Items {
			quantities[item.ProductID] += item.Quantity
		}
		productIDs := make([]uuid.UUID, 0, len(quantities))
		for id := range quantities {
			productIDs = append(productIDs, id)
		}
		sort.Slice(productIDs, func(i, j int) bool {
			return productIDs[i].String() < productIDs[j].String()
		})

		for _, productID := range productIDs {
			var product model.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", productID).Error; err != nil {
				return apperr.FromDB(err, "Product not found")
			}

			qty := quantities[productID]
			if product.Stock < qty {
				return apperr.Newf(apperr.InsufficientStock, "Not enough stock for %s", product.Name)
			}

			if err := tx.Model(&model.Product{}).
				Where("id = ?", productID).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty)).Error; err != nil {
				return err
			}
		}

		// Order + items insert in the same transaction
		return tx.Create(order).Error
	})
}

func (r *orderRepo) List(filter OrderFilter) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{})

	if len(filter.StoreIDs) > 0 {
		query = query.Where("store_id IN ?", filter.StoreIDs)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.Status != "" {
		query = query.Where("order_status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		query = r.applySearch(query, filter.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.Preload("Items").Preload("Items.Product").Preload("Customer").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

// applySearch implements the free-text order search: a "#"-prefixed term
// matches the order id exactly, anything else matches the customer's
// name/email/phone or an ordered product's name, case-insensitive.
func (r *orderRepo) applySearch(query *gorm.DB, search string) *gorm.DB {
	if strings.HasPrefix(search, "#") {
		id, err := uuid.Parse(strings.TrimPrefix(search, "#"))
		if err != nil {
			// Not a valid id; no order can match
			return query.Where("1 = 0")
		}
		return query.Where("id = ?", id)
	}

	like := "%" + search + "%"
	customerMatch := r.db.Model(&model.Customer{}).Select("id").
		Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	productMatch := r.db.Model(&model.OrderItem{}).Select("order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.name ILIKE ?", like)

	return query.Where(
		r.db.Where("customer_id IN (?)", customerMatch).
			Or("id IN (?)", productMatch),
	)
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Customer").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByCustomer(customerID uuid.UUID, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{}).Where("customer_id = ?", customerID)
	if status != "" {
		query = query.Where("order_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.Preload("Items").Preload("Items.Product").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) FindCustomerOrder(orderID, customerID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		First(&order, "id = ? AND customer_id = ?", orderID, customerID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("order_status", status).Error
}
