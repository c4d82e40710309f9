package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
)

// BenefitsHandler serves the fixed benefit catalog.
type BenefitsHandler struct{}

// NewBenefitsHandler constructs handler.
func NewBenefitsHandler() *BenefitsHandler {
	return &BenefitsHandler{}
}

// List handles GET /benefits with an optional ?category= filter.
func (h *BenefitsHandler) List(c *fiber.Ctx) error {
	benefits := domain.FilterBenefits(domain.BenefitCatalog(), c.Query("category"))
	return c.JSON(fiber.Map{"data": benefits})
}
