package service

import (
	"testing"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repository.UserRepository
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}}
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(user *model.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	return nil
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	resp, err := svc.Register(RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)

	// Stored password is a bcrypt hash, never the plaintext
	stored := users.byEmail["jane@example.com"]
	assert.NotEqual(t, "hunter2hunter2", stored.Password)
	assert.True(t, stored.CheckPassword("hunter2hunter2"))

	_, err = svc.Register(RegisterInput{
		Name:     "Jane Again",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	_, err := svc.Register(RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(LoginInput{Email: "jane@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)

		claims, err := jwt.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, jwt.RoleOwner, claims.Role)
		assert.Equal(t, users.byEmail["jane@example.com"].ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(LoginInput{Email: "jane@example.com", Password: "wrong-password"})
		require.Error(t, err)
		assert.Equal(t, apperr.Auth, apperr.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(LoginInput{Email: "ghost@example.com", Password: "hunter2hunter2"})
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

// ---- storefront customer auth ----

type fakeClientCustomerRepo struct {
	repository.CustomerRepository
	byID map[uuid.UUID]*model.Customer
}

func newFakeClientCustomerRepo() *fakeClientCustomerRepo {
	return &fakeClientCustomerRepo{byID: map[uuid.UUID]*model.Customer{}}
}

func (f *fakeClientCustomerRepo) FindByEmail(storeID uuid.UUID, email string) (*model.Customer, error) {
	for _, c := range f.byID {
		if c.StoreID == storeID && c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	customer, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeClientCustomerRepo) Create(customer *model.Customer) error {
	customer.ID = uuid.New()
	f.byID[customer.ID] = customer
	return nil
}

func (f *fakeClientCustomerRepo) Update(customer *model.Customer) error { return nil }

func TestClientRegister_ScopedByStore(t *testing.T) {
	customers := newFakeClientCustomerRepo()
	svc := NewClientAuthService(customers)

	storeA := uuid.New()
	storeB := uuid.New()

	respA, err := svc.Register(storeA, ClientRegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(respA.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleCustomer, claims.Role)
	assert.Equal(t, storeA, claims.StoreID)

	// Same email is fine for a different store
	_, err = svc.Register(storeB, ClientRegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	// ...but a duplicate within the same store conflicts
	_, err = svc.Register(storeA, ClientRegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestClientLogin_WrongStore(t *testing.T) {
	customers := newFakeClientCustomerRepo()
	svc := NewClientAuthService(customers)

	storeID := uuid.New()
	_, err := svc.Register(storeID, ClientRegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(uuid.New(), LoginInput{Email: "jane@example.com", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	customers := newFakeClientCustomerRepo()
	svc := NewClientAuthService(customers)

	storeID := uuid.New()
	resp, err := svc.Register(storeID, ClientRegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(resp.User.ID, ProfileUpdateInput{
		Name:    "Jane D.",
		Phone:   "555-0100",
		Address: "221B Baker Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
}
