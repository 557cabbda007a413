package handler

import (
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler serves the storefront surface. Every route runs behind
// ResolveStore, so the tenant is always available from context.
type ClientHandler struct {
	authService    service.ClientAuthService
	catalogService service.CatalogService
	orderService   service.OrderService
}

func NewClientHandler(
	authService service.ClientAuthService,
	catalogService service.CatalogService,
	orderService service.OrderService,
) *ClientHandler {
	return &ClientHandler{
		authService:    authService,
		catalogService: catalogService,
		orderService:   orderService,
	}
}

func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var input service.ClientRegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	resp, err := h.authService.Register(getStoreID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "User created successfully", "user": resp.User, "token": resp.Token})
}

func (h *ClientHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	resp, err := h.authService.Login(getStoreID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Login successful", "token": resp.Token, "user": resp.User})
}

func (h *ClientHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.authService.Profile(getCustomerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ClientHandler) UpdateProfile(c *fiber.Ctx) error {
	var input service.ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	profile, err := h.authService.UpdateProfile(getCustomerID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ClientHandler) GetStore(c *fiber.Ctx) error {
	store := c.Locals("store")
	if store == nil {
		return c.Status(404).JSON(fiber.Map{"message": "Not Found!"})
	}
	return c.JSON(store)
}

func (h *ClientHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.StorefrontFilter{
		StoreID: getStoreID(c),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 100),
		Search:  c.Query("name"),
	}

	products, total, err := h.catalogService.StorefrontProducts(filter)
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

func (h *ClientHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	product, err := h.catalogService.StorefrontProduct(getStoreID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ClientHandler) GetCartDetails(c *fiber.Ctx) error {
	var body struct {
		Items []service.CartLine `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	items, err := h.catalogService.CartDetails(body.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *ClientHandler) SearchSuggestions(c *fiber.Ctx) error {
	products, err := h.catalogService.SearchSuggestions(getStoreID(c), c.Query("query"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *ClientHandler) SearchProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	products, total, err := h.catalogService.SearchProducts(getStoreID(c), c.Query("query"), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"products": products,
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

func (h *ClientHandler) CreateOrder(c *fiber.Ctx) error {
	var input service.StorefrontOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.orderService.PlaceStorefrontOrder(c.Context(), getStoreID(c), getCustomerID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(order)
}

func (h *ClientHandler) GetOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	orders, total, err := h.orderService.CustomerOrders(getCustomerID(c), c.Query("orderStatus"), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  total,
		"page":   page,
		"limit":  limit,
		"orders": orders,
	})
}

func (h *ClientHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid order ID"})
	}

	order, err := h.orderService.CustomerOrder(getCustomerID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}
