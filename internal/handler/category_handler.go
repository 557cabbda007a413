package handler

import (
	"github.com/shariarfaisal/snapshop-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CatalogService
}

func NewCategoryHandler(s service.CatalogService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	storeID := parseUUIDQuery(c, "storeId")
	if storeID == nil {
		return c.Status(400).JSON(fiber.Map{"message": "storeId is required"})
	}

	categories, err := h.service.ListCategories(getUserID(c), *storeID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(getUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid category ID"})
	}

	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(getUserID(c), id, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
