package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jwt-issuer/internal/service"
)

// IssuerHandler exposes token issuance.
type IssuerHandler struct {
	issuer *service.IssuerService
}

// NewIssuerHandler constructs handler.
func NewIssuerHandler(issuerService *service.IssuerService) *IssuerHandler {
	return &IssuerHandler{issuer: issuerService}
}

// Issue handles POST /jwt/issuer.
func (h *IssuerHandler) Issue(c *fiber.Ctx) error {
	resp, err := h.issuer.Issue(c.UserContext(), c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}
