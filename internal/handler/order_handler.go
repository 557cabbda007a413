package handler

import (
	"github.com/shariarfaisal/snapshop-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var input service.OwnerOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.service.PlaceOwnerOrder(c.Context(), getUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(order)
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	input := service.ListOrdersInput{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
		StoreID:    parseUUIDQuery(c, "storeId"),
		Status:     c.Query("status"),
		CustomerID: parseUUIDQuery(c, "customerId"),
		Search:     c.Query("search"),
	}

	orders, total, err := h.service.ListOrders(getUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  total,
		"page":   input.Page,
		"limit":  input.Limit,
		"orders": orders,
	})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid order ID"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(getUserID(c), id, body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated successfully", "order": order})
}
