package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alkmaar-rp/supportbot/internal/api/dto"
	"github.com/alkmaar-rp/supportbot/internal/service"
)

// SignoffHandler exposes the staff absence form endpoint.
type SignoffHandler struct {
	signoffs *service.SignoffService
}

// NewSignoffHandler constructs handler.
func NewSignoffHandler(signoffService *service.SignoffService) *SignoffHandler {
	return &SignoffHandler{signoffs: signoffService}
}

// Submit handles POST /signoff.
func (h *SignoffHandler) Submit(c *fiber.Ctx) error {
	var req dto.SignoffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.signoffs.Submit(c.Context(), req.Naam, req.StartDatum, req.EindDatum, req.Reden); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{"status": "ingediend"},
	})
}
