package handler

import (
	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler works straight off the repository; store CRUD has no
// business rules beyond domain uniqueness.
type StoreHandler struct {
	storeRepo repository.StoreRepository
}

func NewStoreHandler(storeRepo repository.StoreRepository) *StoreHandler {
	return &StoreHandler{storeRepo: storeRepo}
}

func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.storeRepo.FindByOwner(getUserID(c))
	if err != nil {
		return fail(c, apperr.Wrap(apperr.Internal, "Failed to fetch stores", err))
	}
	return c.JSON(stores)
}

func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid store ID"})
	}

	store, err := h.storeRepo.FindByID(id)
	if err != nil || store.OwnerID != getUserID(c) {
		return c.Status(404).JSON(fiber.Map{"message": "Store not found"})
	}
	return c.JSON(store)
}

func (h *StoreHandler) CreateStore(c *fiber.Ctx) error {
	var store model.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	store.OwnerID = getUserID(c)

	if errs := validator.ValidateStruct(store); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Name and domain are required"})
	}

	if exists, err := h.storeRepo.DomainExists(store.Domain); err == nil && exists {
		return c.Status(409).JSON(fiber.Map{"message": "Domain is already taken"})
	}

	if err := h.storeRepo.Create(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Failed to create store"})
	}
	return c.Status(201).JSON(store)
}

func (h *StoreHandler) DomainExists(c *fiber.Ctx) error {
	domain := c.Query("domain")
	if domain == "" {
		return c.Status(400).JSON(fiber.Map{"message": "domain is required"})
	}

	exists, err := h.storeRepo.DomainExists(domain)
	if err != nil {
		return fail(c, apperr.Wrap(apperr.Internal, "Something went wrong", err))
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (h *StoreHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid store ID"})
	}

	store, err := h.storeRepo.FindByID(id)
	if err != nil || store.OwnerID != getUserID(c) {
		return c.Status(404).JSON(fiber.Map{"message": "Store not found"})
	}

	if err := h.storeRepo.Delete(id); err != nil {
		return fail(c, apperr.Wrap(apperr.Internal, "Failed to delete store", err))
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
