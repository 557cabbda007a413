package repository

import (
	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter composes the owner-side product listing query
type ProductFilter struct {
	Page       int
	Limit      int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Name       string
	CategoryID *uuid.UUID
	StoreIDs   []uuid.UUID // caller's tenant scope
	StoreID    *uuid.UUID
}

// StorefrontFilter composes the storefront listing query for one store.
// Search matches product names, attribute values, and variant names.
type StorefrontFilter struct {
	StoreID uuid.UUID
	Page    int
	Limit   int
	Search  string
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	List(filter ProductFilter) ([]model.Product, int64, error)
	ListStorefront(filter StorefrontFilter) ([]model.Product, int64, error)
	Search(storeID uuid.UUID, query string, page, limit int) ([]model.Product, int64, error)
	Suggestions(storeID uuid.UUID, query string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id, storeID uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variants").Preload("Media").Preload("Attributes").Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs is the batched cart lookup: one query plus preloads for
// variants and media, which the order workflow snapshots from.
func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Variants").Preload("Media").
		Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) List(filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if len(filter.StoreIDs) > 0 {
		query = query.Where("store_id IN ?", filter.StoreIDs)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("base_price <= ?", *filter.MaxPrice)
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Preload("Category").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListStorefront(filter StorefrontFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{}).Where("store_id = ?", filter.StoreID)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			r.db.Where("name ILIKE ?", like).
				Or("id IN (?)", r.db.Model(&model.ProductAttribute{}).Select("product_id").Where("value ILIKE ?", like)).
				Or("id IN (?)", r.db.Model(&model.Variant{}).Select("product_id").Where("name ILIKE ?", like)),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Preload("Variants").Preload("Media").Preload("Category").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Search(storeID uuid.UUID, q string, page, limit int) ([]model.Product, int64, error) {
	like := "%" + q + "%"
	query := r.db.Model(&model.Product{}).
		Where("store_id = ?", storeID).
		Where("name ILIKE ? OR description ILIKE ?", like, like)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Preload("Category").Preload("Media").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Suggestions(storeID uuid.UUID, q string) ([]model.Product, error) {
	like := "%" + q + "%"
	var products []model.Product
	err := r.db.Preload("Media").
		Select("id", "name", "base_price").
		Where("store_id = ?", storeID).
		Where("name ILIKE ? OR description ILIKE ?", like, like).
		Limit(5).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

// Delete is tenant-scoped; the returned count is zero when the product
// does not exist or belongs to another store.
func (r *productRepo) Delete(id, storeID uuid.UUID) (int64, error) {
	res := r.db.Where("id = ? AND store_id = ?", id, storeID).Delete(&model.Product{})
	return res.RowsAffected, res.Error
}
