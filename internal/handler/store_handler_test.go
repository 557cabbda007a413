package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/shariarfaisal/snapshop-backend/internal/middleware"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoreRepo struct {
	repository.StoreRepository
	takenDomain string
	askedDomain string
	listErr     error
}

func (f *fakeStoreRepo) DomainExists(domain string) (bool, error) {
	f.askedDomain = domain
	return domain == f.takenDomain, nil
}

func (f *fakeStoreRepo) FindByOwner(ownerID uuid.UUID) ([]model.Store, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []model.Store{}, nil
}

func newStoreApp(repo *fakeStoreRepo) *fiber.App {
	h := NewStoreHandler(repo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, uuid.New())
		return c.Next()
	})
	app.Get("/stores", h.GetStores)
	app.Get("/stores/domain-exists", h.DomainExists)
	return app
}

func TestDomainExists(t *testing.T) {
	repo := &fakeStoreRepo{takenDomain: "acme"}
	app := newStoreApp(repo)

	t.Run("taken domain", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stores/domain-exists?domain=acme", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.True(t, payload["exists"])
		assert.Equal(t, "acme", repo.askedDomain)
	})

	t.Run("free domain", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stores/domain-exists?domain=ghost", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.False(t, payload["exists"])
	})

	t.Run("missing query param", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stores/domain-exists", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetStores_RepoError(t *testing.T) {
	repo := &fakeStoreRepo{listErr: errors.New("pq: connection refused")}
	app := newStoreApp(repo)

	req := httptest.NewRequest("GET", "/stores", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	// Raw store errors never reach the response body
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Failed to fetch stores", payload["message"])
}
