package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubdomainFromOrigin(t *testing.T) {
	cases := []struct {
		origin string
		want   string
	}{
		{"https://acme.snapshop.app", "acme"},
		{"http://acme.snapshop.app:3000", "acme"},
		{"https://deep.acme.snapshop.app", "deep"},
		{"https://localhost", ""},
		{"", ""},
		{"::not-a-url::", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SubdomainFromOrigin(tc.origin), "origin %q", tc.origin)
	}
}

type fakeStoreRepo struct {
	repository.StoreRepository
	store *model.Store
}

func (f *fakeStoreRepo) FindByDomain(domain string) (*model.Store, error) {
	if f.store != nil && f.store.Domain == domain {
		return f.store, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestRequireOwner(t *testing.T) {
	userID := uuid.New()

	app := fiber.New()
	app.Get("/secret", RequireOwner(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals(LocalUserID)})
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("customer token rejected", func(t *testing.T) {
		token, err := jwt.GenerateCustomerToken(userID, uuid.New())
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("owner token accepted", func(t *testing.T) {
		token, err := jwt.GenerateOwnerToken(userID)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRequireCustomer_RejectsTokenForOtherStore(t *testing.T) {
	storeID := uuid.New()
	otherStoreID := uuid.New()

	app := fiber.New()
	app.Get("/profile", func(c *fiber.Ctx) error {
		c.Locals(LocalStoreID, storeID) // as set by ResolveStore
		return c.Next()
	}, RequireCustomer(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	token, err := jwt.GenerateCustomerToken(uuid.New(), otherStoreID)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	token, err = jwt.GenerateCustomerToken(uuid.New(), storeID)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestResolveStore(t *testing.T) {
	store := &model.Store{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Acme",
		Domain:    "acme",
	}
	repo := &fakeStoreRepo{store: store}

	app := fiber.New()
	app.Get("/store", ResolveStore(repo), func(c *fiber.Ctx) error {
		resolved := c.Locals(LocalStore).(*model.Store)
		return c.JSON(fiber.Map{"id": resolved.ID})
	})

	t.Run("resolves from origin subdomain", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/store", nil)
		req.Header.Set("Origin", "https://acme.snapshop.app")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("falls back to X-Store-Domain", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/store", nil)
		req.Header.Set("X-Store-Domain", "acme")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("unknown domain", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/store", nil)
		req.Header.Set("Origin", "https://ghost.snapshop.app")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("no origin at all", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/store", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}
