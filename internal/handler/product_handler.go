package handler

import (
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(getUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(getUserID(c), id, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
		Name:       c.Query("name"),
		CategoryID: parseUUIDQuery(c, "categoryId"),
		StoreID:    parseUUIDQuery(c, "storeId"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &min
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &max
		}
	}

	products, total, err := h.service.ListProducts(getUserID(c), filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
		"products": products,
	})
}
