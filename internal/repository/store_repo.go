package repository

import (
	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id uuid.UUID) (*model.Store, error)
	FindByDomain(domain string) (*model.Store, error)
	FindByOwner(ownerID uuid.UUID) ([]model.Store, error)
	IDsByOwner(ownerID uuid.UUID) ([]uuid.UUID, error)
	OwnedBy(storeID, ownerID uuid.UUID) (bool, error)
	DomainExists(domain string) (bool, error)
	Delete(id uuid.UUID) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) FindByDomain(domain string) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, "domain = ?", domain).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) FindByOwner(ownerID uuid.UUID) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) IDsByOwner(ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Store{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *storeRepo) OwnedBy(storeID, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Store{}).
		Where("id = ? AND owner_id = ?", storeID, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *storeRepo) DomainExists(domain string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Store{}).Where("domain = ?", domain).Count(&count).Error
	return count > 0, err
}

// Delete performs a full store teardown; dependent rows cascade
func (r *storeRepo) Delete(id uuid.UUID) error {
	return r.db.Select("Products", "Categories", "Customers", "Orders").
		Delete(&model.Store{BaseModel: model.BaseModel{ID: id}}).Error
}
