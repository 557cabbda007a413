package service

import (
	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/jwt"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"gorm.io/gorm"
)

// RegisterInput is the owner sign-up payload
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(input RegisterInput) (*model.UserResponse, error)
	Login(input LoginInput) (*LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(input RegisterInput) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	if existing, err := s.userRepo.FindByEmail(input.Email); err == nil && existing != nil {
		return nil, apperr.New(apperr.Conflict, "User already exists")
	}

	user := &model.User{
		Name:  input.Name,
		Email: input.Email,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Registration failed", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Registration failed", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Login(input LoginInput) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, "Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Login failed", err)
	}

	if !user.CheckPassword(input.Password) {
		return nil, apperr.New(apperr.Auth, "Invalid credentials")
	}

	token, err := jwt.GenerateOwnerToken(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Login failed", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
