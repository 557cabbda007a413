package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Customer is a storefront shopper account, scoped to one store.
// Email is unique per store, not globally.
type Customer struct {
	BaseModel
	StoreID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_store_email" json:"store_id"`
	Store    *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_store_email" json:"email" validate:"required,email"`
	Phone    string    `gorm:"type:varchar(20)" json:"phone"`
	Password string    `gorm:"type:varchar(255)" json:"-"`
	Address  string    `gorm:"type:text" json:"address"`

	Orders []Order `json:"orders,omitempty"`
}

// SetPassword hashes and sets the customer's password
func (c *Customer) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (c *Customer) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password))
	return err == nil
}

// CustomerResponse is used for API responses (without sensitive data)
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
