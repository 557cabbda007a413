package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	BaseModel
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock" validate:"gte=0"`

	// Free-form metadata supplied by the store owner
	CustomFields datatypes.JSONMap `gorm:"type:jsonb" json:"custom_fields,omitempty"`

	Attributes []ProductAttribute `gorm:"constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	Variants   []Variant          `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Media      []Media            `gorm:"constraint:OnDelete:CASCADE" json:"media,omitempty"`
}

// Variant is a purchasable variation of a product. Its price overrides the
// product's base price when the variant is selected in a cart line. Variant
// stock is informational; availability checks run against product stock.
type Variant struct {
	BaseModel
	ProductID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Name       string            `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU        string            `gorm:"type:varchar(50)" json:"sku,omitempty"`
	Price      decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock      int               `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Attributes datatypes.JSONMap `gorm:"type:jsonb" json:"attributes,omitempty"`
}

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

type Media struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string    `gorm:"type:text;not null" json:"url" validate:"required,url"`
	Type      MediaType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=image video document"`
	AltText   string    `gorm:"type:varchar(255)" json:"alt_text,omitempty"`
}

type ProductAttribute struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Key       string    `gorm:"type:varchar(100);not null" json:"key" validate:"required"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value" validate:"required"`
}

// Thumbnail returns the first media URL, used for order item snapshots
func (p *Product) Thumbnail() string {
	if len(p.Media) == 0 {
		return ""
	}
	return p.Media[0].URL
}

// FindVariant returns the variant with the given id, or nil
func (p *Product) FindVariant(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}
