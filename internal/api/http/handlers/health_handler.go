package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jwt-issuer/internal/api/dto"
	"github.com/spec-kit/jwt-issuer/internal/config"
)

// HealthHandler serves the informational and liveness endpoints.
type HealthHandler struct {
	info config.RuntimeInfo
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(info config.RuntimeInfo) *HealthHandler {
	return &HealthHandler{info: info}
}

// Info handles GET /.
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.InfoResponse{
		Service:     h.info.Service,
		Description: h.info.Description,
		Version:     h.info.Version,
		UpSince:     h.info.UpSince(),
		Creator:     h.info.Creator,
		Code:        h.info.Code,
		Resources:   h.info.Resources,
	})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.info.Service,
		"version": h.info.Version,
	})
}
