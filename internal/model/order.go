package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// AllOrderStatuses lists every accepted status value
var AllOrderStatuses = []OrderStatus{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// IsValid reports whether the status is one of the enumerated values
func (s OrderStatus) IsValid() bool {
	for _, v := range AllOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type Order struct {
	BaseModel
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	Store           *Store          `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"` // owner who placed on behalf
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	OrderStatus     OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"order_status"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem snapshots the resolved price at order time. Price and Details are
// immutable after creation so later catalog edits never alter order history.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Details   datatypes.JSON  `gorm:"type:jsonb" json:"details,omitempty"`
}

// ItemDetails is the display snapshot stored in OrderItem.Details
type ItemDetails struct {
	Name      string     `json:"name"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Image     string     `json:"image,omitempty"`
}
