package service

import (
	"errors"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/jwt"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRegisterInput is the storefront customer sign-up payload
type ClientRegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
}

type ClientLoginResponse struct {
	Token string                 `json:"token"`
	User  model.CustomerResponse `json:"user"`
}

// ProfileUpdateInput carries the editable customer profile fields
type ProfileUpdateInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ClientAuthService handles storefront customer identity. Every operation
// is scoped to the store resolved from the request's subdomain.
type ClientAuthService interface {
	Register(storeID uuid.UUID, input ClientRegisterInput) (*ClientLoginResponse, error)
	Login(storeID uuid.UUID, input LoginInput) (*ClientLoginResponse, error)
	Profile(customerID uuid.UUID) (*model.CustomerResponse, error)
	UpdateProfile(customerID uuid.UUID, input ProfileUpdateInput) (*model.CustomerResponse, error)
}

type clientAuthService struct {
	customerRepo repository.CustomerRepository
}

func NewClientAuthService(customerRepo repository.CustomerRepository) ClientAuthService {
	return &clientAuthService{customerRepo: customerRepo}
}

func (s *clientAuthService) Register(storeID uuid.UUID, input ClientRegisterInput) (*ClientLoginResponse, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	if _, err := s.customerRepo.FindByEmail(storeID, input.Email); err == nil {
		return nil, apperr.New(apperr.Conflict, "User already exists")
	}

	customer := &model.Customer{
		StoreID: storeID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
	}
	if err := customer.SetPassword(input.Password); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Registration failed", err)
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Registration failed", err)
	}

	token, err := jwt.GenerateCustomerToken(customer.ID, storeID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Registration failed", err)
	}

	return &ClientLoginResponse{Token: token, User: customer.ToResponse()}, nil
}

func (s *clientAuthService) Login(storeID uuid.UUID, input LoginInput) (*ClientLoginResponse, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, "Email and password are required")
	}

	customer, err := s.customerRepo.FindByEmail(storeID, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Login failed", err)
	}

	if !customer.CheckPassword(input.Password) {
		return nil, apperr.New(apperr.Auth, "Invalid credentials")
	}

	token, err := jwt.GenerateCustomerToken(customer.ID, storeID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Login failed", err)
	}

	return &ClientLoginResponse{Token: token, User: customer.ToResponse()}, nil
}

func (s *clientAuthService) Profile(customerID uuid.UUID) (*model.CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, apperr.FromDB(err, "Customer not found")
	}
	resp := customer.ToResponse()
	return &resp, nil
}

func (s *clientAuthService) UpdateProfile(customerID uuid.UUID, input ProfileUpdateInput) (*model.CustomerResponse, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, apperr.FromDB(err, "Customer not found")
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Something went wrong", err)
	}

	resp := customer.ToResponse()
	return &resp, nil
}
