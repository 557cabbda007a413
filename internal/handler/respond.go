package handler

import (
	"log"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail translates a classified error into its HTTP response. Unclassified
// errors are logged server-side and genericized for the client.
func fail(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if status == 500 {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"message": apperr.Message(err)})
}

// getUserID reads the owner id set by the RequireOwner middleware
func getUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(middleware.LocalUserID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// getCustomerID reads the customer id set by the RequireCustomer middleware
func getCustomerID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(middleware.LocalCustomerID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// getStoreID reads the tenant id set by ResolveStore or RequireCustomer
func getStoreID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(middleware.LocalStoreID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parseUUIDQuery parses an optional uuid query parameter
func parseUUIDQuery(c *fiber.Ctx, key string) *uuid.UUID {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
