package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/mailer"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/internal/ws"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// commitTimeout bounds the stock-reservation transaction so a blocked lock
// surfaces as an error instead of hanging the caller.
const commitTimeout = 5 * time.Second

// CartLine is one requested product(+variant) and quantity
type CartLine struct {
	ProductID uuid.UUID  `json:"id" validate:"uuid_required"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

// StorefrontOrderInput is the customer checkout payload
type StorefrontOrderInput struct {
	Items           []CartLine `json:"items" validate:"dive"`
	ShippingAddress string     `json:"shipping_address" validate:"required"`
}

// OwnerOrderInput is the owner-on-behalf-of-customer payload
type OwnerOrderInput struct {
	StoreID    uuid.UUID  `json:"store_id" validate:"uuid_required"`
	CustomerID uuid.UUID  `json:"customer_id" validate:"uuid_required"`
	Products   []CartLine `json:"products" validate:"dive"`
}

// ListOrdersInput carries the owner-side listing filters
type ListOrdersInput struct {
	Page       int
	Limit      int
	StoreID    *uuid.UUID
	Status     string
	CustomerID *uuid.UUID
	Search     string
}

type OrderService interface {
	PlaceStorefrontOrder(ctx context.Context, storeID, customerID uuid.UUID, input StorefrontOrderInput) (*model.Order, error)
	PlaceOwnerOrder(ctx context.Context, ownerID uuid.UUID, input OwnerOrderInput) (*model.Order, error)
	ListOrders(ownerID uuid.UUID, input ListOrdersInput) ([]model.Order, int64, error)
	GetOrder(ownerID, orderID uuid.UUID) (*model.Order, error)
	UpdateStatus(ownerID, orderID uuid.UUID, status string) (*model.Order, error)
	CustomerOrders(customerID uuid.UUID, status string, page, limit int) ([]model.Order, int64, error)
	CustomerOrder(customerID, orderID uuid.UUID) (*model.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	mailer       mailer.Mailer
	wsHub        *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	m mailer.Mailer,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		mailer:       m,
		wsHub:        hub,
	}
}

// buildOrderItems resolves each cart line against the loaded catalog state:
// picks the variant price when a matching variant is selected, verifies the
// product has enough stock, and snapshots the display details so later
// catalog edits cannot alter order history. Lines referencing an unknown
// product are dropped when strict is false (storefront checkout) and
// rejected when strict is true (owner flow).
func buildOrderItems(lines []CartLine, products []model.Product, strict bool) ([]model.OrderItem, decimal.Decimal, error) {
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			if strict {
				return nil, decimal.Zero, apperr.Newf(apperr.NotFound, "Product %s not found", line.ProductID)
			}
			continue
		}

		price := product.BasePrice
		details := model.ItemDetails{
			Name:  product.Name,
			Image: product.Thumbnail(),
		}
		if line.VariantID != nil {
			if variant := product.FindVariant(*line.VariantID); variant != nil {
				price = variant.Price
				details.VariantID = &variant.ID
			}
		}

		if product.Stock < line.Quantity {
			return nil, decimal.Zero, apperr.Newf(apperr.InsufficientStock, "Not enough stock for %s", product.Name)
		}

		detailsJSON, err := json.Marshal(details)
		if err != nil {
			return nil, decimal.Zero, apperr.Wrap(apperr.Internal, "Something went wrong", err)
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     price,
			Details:   detailsJSON,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return items, total, nil
}

func (s *orderService) PlaceStorefrontOrder(ctx context.Context, storeID, customerID uuid.UUID, input StorefrontOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.New(apperr.Validation, "Items can't be empty")
	}
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	ids := make([]uuid.UUID, len(input.Items))
	for i, line := range input.Items {
		ids[i] = line.ProductID
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}

	items, total, err := buildOrderItems(input.Items, products, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// Every line referenced an unknown product
		return nil, apperr.New(apperr.Validation, "Items can't be empty")
	}

	order := &model.Order{
		StoreID:         storeID,
		CustomerID:      &customerID,
		TotalPrice:      total,
		OrderStatus:     model.OrderPending,
		ShippingAddress: input.ShippingAddress,
		Items:           items,
	}

	if err := s.commit(ctx, order); err != nil {
		return nil, err
	}

	s.notifyCreated(order)
	return order, nil
}

func (s *orderService) PlaceOwnerOrder(ctx context.Context, ownerID uuid.UUID, input OwnerOrderInput) (*model.Order, error) {
	if len(input.Products) == 0 {
		return nil, apperr.New(apperr.Validation, "Order must include products")
	}
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

	customer, err := s.customerRepo.FindByID(input.CustomerID)
	if err != nil || customer.StoreID != input.StoreID {
		return nil, apperr.New(apperr.NotFound, "Customer not found")
	}

	ids := make([]uuid.UUID, len(input.Products))
	for i, line := range input.Products {
		ids[i] = line.ProductID
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}

	items, total, err := buildOrderItems(input.Products, products, true)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		StoreID:     input.StoreID,
		UserID:      &ownerID,
		CustomerID:  &input.CustomerID,
		TotalPrice:  total,
		OrderStatus: model.OrderPending,
		Items:       items,
	}

	if err := s.commit(ctx, order); err != nil {
		return nil, err
	}

	s.notifyCreated(order)
	return order, nil
}

// commit runs the atomic stock-reservation transaction under a deadline
func (s *orderService) commit(ctx context.Context, order *model.Order) error {
	ctx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()

	err := s.orderRepo.CreateWithStock(ctx, order)
	if err == nil {
		return nil
	}
	switch apperr.KindOf(err) {
	case apperr.InsufficientStock, apperr.NotFound:
		return err
	default:
		if ctx.Err() != nil {
			return apperr.Wrap(apperr.Internal, "Order could not be committed in time", err)
		}
		return apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
}

// notifyCreated dispatches the confirmation email and the dashboard event.
// Both are fire-and-forget: a failed send never fails the order.
func (s *orderService) notifyCreated(order *model.Order) {
	go func() {
		if order.CustomerID != nil {
			customer, err := s.customerRepo.FindByID(*order.CustomerID)
			if err == nil && customer.Email != "" {
				body := mailer.OrderConfirmationBody(customer.Name, order)
				if err := s.mailer.Send(customer.Email, "Order Confirmation", body); err != nil {
					log.Printf("order %s: confirmation email failed: %v", order.ID, err)
				}
			}
		}

		s.wsHub.BroadcastEvent("order_created", map[string]interface{}{
			"order_id":    order.ID,
			"store_id":    order.StoreID,
			"total_price": order.TotalPrice,
			"items":       len(order.Items),
		})
	}()
}

func (s *orderService) ListOrders(ownerID uuid.UUID, input ListOrdersInput) ([]model.Order, int64, error) {
	storeIDs, err := s.storeRepo.IDsByOwner(ownerID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if len(storeIDs) == 0 {
		return []model.Order{}, 0, nil
	}

	filter := repository.OrderFilter{
		Page:       input.Page,
		Limit:      input.Limit,
		StoreIDs:   storeIDs,
		CustomerID: input.CustomerID,
		Search:     input.Search,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	if input.Status != "" {
		status := model.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, 0, apperr.New(apperr.Validation, "Invalid order status")
		}
		filter.Status = status
	}

	if input.StoreID != nil {
		owned, err := s.storeRepo.OwnedBy(*input.StoreID, ownerID)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.Internal, "Something went wrong", err)
		}
		if !owned {
			return nil, 0, apperr.New(apperr.NotFound, "Store not found")
		}
		filter.StoreID = input.StoreID
	}

	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	return orders, total, nil
}

func (s *orderService) GetOrder(ownerID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, apperr.FromDB(err, "Order not found")
	}

	// Cross-tenant access is masked as NotFound so order ids from other
	// stores are indistinguishable from absent ones.
	owned, err := s.storeRepo.OwnedBy(order.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ownerID, orderID uuid.UUID, status string) (*model.Order, error) {
	target := model.OrderStatus(status)
	if !target.IsValid() {
		return nil, apperr.New(apperr.Validation, "Invalid order status")
	}

	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderStatus.IsTerminal() {
		return nil, apperr.Newf(apperr.Validation, "Order is already %s", order.OrderStatus)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, target); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	order.OrderStatus = target

	s.notifyStatusChanged(order, target)
	return order, nil
}

func (s *orderService) notifyStatusChanged(order *model.Order, status model.OrderStatus) {
	go func() {
		if order.Customer != nil && order.Customer.Email != "" {
			body := mailer.StatusUpdateBody(order, status)
			if err := s.mailer.Send(order.Customer.Email, "Order Status Update", body); err != nil {
				log.Printf("order %s: status email failed: %v", order.ID, err)
			}
		}

		s.wsHub.BroadcastEvent("order_status_changed", map[string]interface{}{
			"order_id": order.ID,
			"store_id": order.StoreID,
			"status":   status,
			"message":  fmt.Sprintf("Order #%s is now %s", order.ID, status),
		})
	}()
}

func (s *orderService) CustomerOrders(customerID uuid.UUID, status string, page, limit int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var filterStatus model.OrderStatus
	if status != "" {
		filterStatus = model.OrderStatus(status)
		if !filterStatus.IsValid() {
			return nil, 0, apperr.New(apperr.Validation, "Invalid order status")
		}
	}

	orders, total, err := s.orderRepo.FindByCustomer(customerID, filterStatus, page, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	return orders, total, nil
}

func (s *orderService) CustomerOrder(customerID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindCustomerOrder(orderID, customerID)
	if err != nil {
		return nil, apperr.FromDB(err, "Order not found")
	}
	return order, nil
}
