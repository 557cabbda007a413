package repository

import (
	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByEmail(storeID uuid.UUID, email string) (*model.Customer, error)
	FindByStores(storeIDs []uuid.UUID) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Orders").First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(storeID uuid.UUID, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Where("store_id = ? AND email = ?", storeID, email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByStores(storeIDs []uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Preload("Orders").
		Where("store_id IN ?", storeIDs).
		Order("created_at DESC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}
