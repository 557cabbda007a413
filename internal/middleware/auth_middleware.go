package middleware

import (
	"net/url"
	"strings"

	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the middleware for downstream handlers
const (
	LocalUserID     = "user_id"
	LocalCustomerID = "customer_id"
	LocalStoreID    = "store_id"
	LocalStore      = "store"
)

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", jwt.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", jwt.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireOwner validates an owner bearer token and sets user_id in context
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Unauthorized, no token provided"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil || claims.Role != jwt.RoleOwner {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid token"})
		}

		c.Locals(LocalUserID, claims.UserID)
		return c.Next()
	}
}

// RequireCustomer validates a storefront customer token. Customer tokens
// are store-scoped; when the route also resolved a store from the
// subdomain, a token minted for another store is rejected.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Unauthorized, no token provided"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil || claims.Role != jwt.RoleCustomer {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid token"})
		}

		if storeID, ok := c.Locals(LocalStoreID).(uuid.UUID); ok && storeID != claims.StoreID {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid token"})
		}

		c.Locals(LocalCustomerID, claims.UserID)
		c.Locals(LocalStoreID, claims.StoreID)
		return c.Next()
	}
}

// SubdomainFromOrigin extracts the left-most host label from an Origin
// header value. Returns "" when no subdomain is present.
func SubdomainFromOrigin(origin string) string {
	if origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// ResolveStore maps the request's Origin subdomain to a store tenant and
// sets it in context. Unknown domains get a 400, so storefront routes can
// assume a resolved store.
func ResolveStore(storeRepo repository.StoreRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subdomain := SubdomainFromOrigin(c.Get("Origin"))
		if subdomain == "" {
			// Direct API access without a browser origin
			subdomain = c.Get("X-Store-Domain")
		}
		if subdomain == "" {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid request"})
		}

		store, err := storeRepo.FindByDomain(subdomain)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Store not found"})
		}

		c.Locals(LocalStore, store)
		c.Locals(LocalStoreID, store.ID)
		return c.Next()
	}
}
