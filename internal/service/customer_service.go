package service

import (
	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"github.com/google/uuid"
)

// CustomerInput is the owner-side customer create/update payload
type CustomerInput struct {
	StoreID uuid.UUID `json:"store_id" validate:"uuid_required"`
	Name    string    `json:"name" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

// CustomerService is the owner-side customer directory, scoped to the
// caller's stores.
type CustomerService interface {
	Create(ownerID uuid.UUID, input CustomerInput) (*model.Customer, error)
	Get(ownerID, customerID uuid.UUID) (*model.Customer, error)
	List(ownerID uuid.UUID) ([]model.Customer, error)
	Update(ownerID, customerID uuid.UUID, input CustomerInput) (*model.Customer, error)
	Delete(ownerID, customerID uuid.UUID) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, storeRepo repository.StoreRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, storeRepo: storeRepo}
}

func (s *customerService) Create(ownerID uuid.UUID, input CustomerInput) (*model.Customer, error) {
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

	if _, err := s.customerRepo.FindByEmail(input.StoreID, input.Email); err == nil {
		return nil, apperr.New(apperr.Conflict, "Customer already exists")
	}

	customer := &model.Customer{
		StoreID: input.StoreID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create customer", err)
	}
	return customer, nil
}

// ownedCustomer loads a customer and masks cross-tenant access as NotFound
func (s *customerService) ownedCustomer(ownerID, customerID uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, apperr.FromDB(err, "Customer not found")
	}

	owned, err := s.storeRepo.OwnedBy(customer.StoreID, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	if !owned {
		return nil, apperr.New(apperr.NotFound, "Customer not found")
	}
	return customer, nil
}

func (s *customerService) Get(ownerID, customerID uuid.UUID) (*model.Customer, error) {
	return s.ownedCustomer(ownerID, customerID)
}

func (s *customerService) List(ownerID uuid.UUID) ([]model.Customer, error) {
	storeIDs, err := s.storeRepo.IDsByOwner(ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}
	customers, err := s.customerRepo.FindByStores(storeIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch customers", err)
	}
	return customers, nil
}

func (s *customerService) Update(ownerID, customerID uuid.UUID, input CustomerInput) (*model.Customer, error) {
	// Update payloads carry profile fields only; the customer keeps its store
	if input.Name == "" || input.Email == "" {
		return nil, apperr.New(apperr.Validation, "Name and email are required")
	}

	customer, err := s.ownedCustomer(ownerID, customerID)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update customer", err)
	}
	return customer, nil
}

func (s *customerService) Delete(ownerID, customerID uuid.UUID) error {
	customer, err := s.ownedCustomer(ownerID, customerID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Delete(customer.ID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete customer", err)
	}
	return nil
}
