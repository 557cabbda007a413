package service

import (
	"errors"
	"strings"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VariantInput is a nested variant in the product payload
type VariantInput struct {
	Name       string            `json:"name" validate:"required"`
	SKU        string            `json:"sku"`
	Price      decimal.Decimal   `json:"price"`
	Stock      int               `json:"stock" validate:"gte=0"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type MediaInput struct {
	URL     string `json:"url" validate:"required,url"`
	Type    string `json:"type" validate:"required,oneof=image video document"`
	AltText string `json:"alt_text"`
}

type AttributeInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// ProductInput is the owner-side create/update payload, validated once at
// the boundary so the workflow only sees well-typed structures.
type ProductInput struct {
	Name         string                 `json:"name" validate:"required"`
	Description  string                 `json:"description"`
	BasePrice    decimal.Decimal        `json:"base_price"`
	Stock        int                    `json:"stock" validate:"gte=0"`
	StoreID      uuid.UUID              `json:"store_id" validate:"uuid_required"`
	CategoryID   *uuid.UUID             `json:"category_id,omitempty"`
	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`
	Attributes   []AttributeInput       `json:"attributes,omitempty" validate:"dive"`
	Variants     []VariantInput         `json:"variants,omitempty" validate:"dive"`
	Media        []MediaInput           `json:"media,omitempty" validate:"dive"`
}

type CategoryInput struct {
	StoreID     uuid.UUID `json:"store_id" validate:"uuid_required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
}

// CartItemView is a priced cart line returned by the preview endpoint
type CartItemView struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Variant  *model.Variant  `json:"variant,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

type CatalogService interface {
	CreateProduct(ownerID uuid.UUID, input ProductInput) (*model.Product, error)
	UpdateProduct(ownerID, productID uuid.UUID, input ProductInput) (*model.Product, error)
	DeleteProduct(ownerID, productID uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(ownerID uuid.UUID, filter repository.ProductFilter) ([]model.Product, int64, error)

	CreateCategory(ownerID uuid.UUID, input CategoryInput) (*model.Category, error)
	UpdateCategory(ownerID, categoryID uuid.UUID, input CategoryInput) (*model.Category, error)
	DeleteCategory(ownerID, categoryID uuid.UUID) error
	ListCategories(ownerID, storeID uuid.UUID) ([]model.Category, error)

	StorefrontProducts(filter repository.StorefrontFilter) ([]model.Product, int64, error)
	StorefrontProduct(storeID, productID uuid.UUID) (*model.Product, error)
	SearchProducts(storeID uuid.UUID, query string, page, limit int) ([]model.Product, int64, error)
	SearchSuggestions(storeID uuid.UUID, query string) ([]model.Product, error)
	CartDetails(lines []CartLine) ([]CartItemView, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storeRepo    repository.StoreRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	storeRepo repository.StoreRepository,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
	}
}

func (s *catalogService) CreateProduct(ownerID uuid.UUID, input ProductInput) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if input.BasePrice.IsNegative() {
		return nil, apperr.New(apperr.Validation, "Base price must be a non-negative number")
	}

	owned, err := s.storeRepo.OwnedBy(input.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Store not found")
	}

	product := productFromInput(input)
	if err := s.productRepo.Create(product); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.Conflict, "Product already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to create product", err)
	}
	return product, nil
}

func productFromInput(input ProductInput) *model.Product {
	product := &model.Product{
		StoreID:     input.StoreID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Stock:       input.Stock,
	}
	if input.CustomFields != nil {
		product.CustomFields = datatypes.JSONMap(input.CustomFields)
	}
	for _, attr := range input.Attributes {
		product.Attributes = append(product.Attributes, model.ProductAttribute{Key: attr.Key, Value: attr.Value})
	}
	for _, v := range input.Variants {
		variant := model.Variant{
			Name:  v.Name,
			SKU:   v.SKU,
			Price: v.Price,
			Stock: v.Stock,
		}
		if v.Attributes != nil {
			variant.Attributes = datatypes.JSONMap{}
			for k, val := range v.Attributes {
				variant.Attributes[k] = val
			}
		}
		product.Variants = append(product.Variants, variant)
	}
	for _, m := range input.Media {
		product.Media = append(product.Media, model.Media{
			URL:     m.URL,
			Type:    model.MediaType(m.Type),
			AltText: m.AltText,
		})
	}
	return product
}

func (s *catalogService) UpdateProduct(ownerID, productID uuid.UUID, input ProductInput) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	existing, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, apperr.FromDB(err, "Product not found")
	}

	owned, err := s.storeRepo.OwnedBy(existing.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Product not found")
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.BasePrice = input.BasePrice
	existing.Stock = input.Stock
	existing.CategoryID = input.CategoryID
	if input.CustomFields != nil {
		existing.CustomFields = datatypes.JSONMap(input.CustomFields)
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update product", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(ownerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return apperr.FromDB(err, "Product not found")
	}

	owned, err := s.storeRepo.OwnedBy(product.StoreID, ownerID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return apperr.New(apperr.NotFound, "Product not found")
	}

	count, err := s.productRepo.Delete(productID, product.StoreID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete product", err)
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "Product not found")
	}
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.FromDB(err, "Product not found")
	}
	return product, nil
}

func (s *catalogService) ListProducts(ownerID uuid.UUID, filter repository.ProductFilter) ([]model.Product, int64, error) {
	storeIDs, err := s.storeRepo.IDsByOwner(ownerID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if len(storeIDs) == 0 {
		return []model.Product{}, 0, nil
	}
	filter.StoreIDs = storeIDs

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to fetch products", err)
	}
	return products, total, nil
}

func (s *catalogService) CreateCategory(ownerID uuid.UUID, input CategoryInput) (*model.Category, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	owned, err := s.storeRepo.OwnedBy(input.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Store not found")
	}

	category := &model.Category{
		StoreID:     input.StoreID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create category", err)
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ownerID, categoryID uuid.UUID, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperr.New(apperr.Validation, "Category name is required")
	}

	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, apperr.FromDB(err, "Category not found")
	}

	owned, err := s.storeRepo.OwnedBy(category.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update category", err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ownerID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return apperr.FromDB(err, "Category not found")
	}

	owned, err := s.storeRepo.OwnedBy(category.StoreID, ownerID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return apperr.New(apperr.NotFound, "Category not found")
	}

	return s.categoryRepo.Delete(categoryID)
}

func (s *catalogService) ListCategories(ownerID, storeID uuid.UUID) ([]model.Category, error) {
	owned, err := s.storeRepo.OwnedBy(storeID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Store not found")
	}
	return s.categoryRepo.FindByStore(storeID)
}

func (s *catalogService) StorefrontProducts(filter repository.StorefrontFilter) ([]model.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	return s.productRepo.ListStorefront(filter)
}

func (s *catalogService) StorefrontProduct(storeID, productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil || product.StoreID != storeID {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "Failed to fetch product", err)
		}
		return nil, apperr.New(apperr.NotFound, "Product not found")
	}
	return product, nil
}

func (s *catalogService) SearchProducts(storeID uuid.UUID, query string, page, limit int) ([]model.Product, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, apperr.New(apperr.Validation, "Search query is required")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.productRepo.Search(storeID, query, page, limit)
}

func (s *catalogService) SearchSuggestions(storeID uuid.UUID, query string) ([]model.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.New(apperr.Validation, "Search query is required")
	}
	return s.productRepo.Suggestions(storeID, query)
}

// CartDetails prices a cart without committing anything: the storefront
// uses it to render the cart page. Unknown products are dropped.
func (s *catalogService) CartDetails(lines []CartLine) ([]CartItemView, error) {
	if len(lines) == 0 {
		return []CartItemView{}, nil
	}

	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch product", err)
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]CartItemView, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}

		price := product.BasePrice
		var variant *model.Variant
		if line.VariantID != nil {
			if v := product.FindVariant(*line.VariantID); v != nil {
				variant = v
				price = v.Price
			}
		}

		items = append(items, CartItemView{
			ID:       product.ID,
			Name:     product.Name,
			Quantity: line.Quantity,
			Variant:  variant,
			Price:    price,
			Total:    price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return items, nil
}

// isUniqueViolation detects the Postgres duplicate-key error class
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
