package model

import "github.com/google/uuid"

// Store is a single tenant: one seller's catalog and order namespace.
// Storefront traffic is resolved to a store by its subdomain (Domain).
type Store struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Domain      string    `gorm:"type:varchar(63);uniqueIndex;not null" json:"domain" validate:"required,subdomain"`
	Currency    string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Products   []Product  `json:"products,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Customers  []Customer `json:"customers,omitempty"`
	Orders     []Order    `json:"orders,omitempty"`
}

// Category groups products inside one store
type Category struct {
	BaseModel
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`

	Products []Product `json:"products,omitempty"`
}
