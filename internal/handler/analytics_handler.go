package handler

import (
	"time"

	"github.com/shariarfaisal/snapshop-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	input := service.AnalyticsInput{
		StoreID: parseUUIDQuery(c, "storeId"),
	}
	if raw := c.Query("startDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			input.StartDate = &t
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			input.EndDate = &t
		}
	}

	report, err := h.service.Report(getUserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}
