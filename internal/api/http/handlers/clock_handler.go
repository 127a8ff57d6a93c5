package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alkmaar-rp/supportbot/internal/api/dto"
	"github.com/alkmaar-rp/supportbot/internal/service"
)

// ClockHandler exposes the staff time-clock over HTTP.
type ClockHandler struct {
	clock *service.ClockService
}

// NewClockHandler constructs handler.
func NewClockHandler(clockService *service.ClockService) *ClockHandler {
	return &ClockHandler{clock: clockService}
}

// ClockIn handles POST /clockin.
func (h *ClockHandler) ClockIn(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.clock.ClockIn(c.Context(), req.Naam); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"naam": req.Naam, "status": "ingeklokt"},
	})
}

// ClockOut handles POST /clockout.
func (h *ClockHandler) ClockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	duration, err := h.clock.ClockOut(c.Context(), req.Naam)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.ClockOutResponse{Naam: req.Naam, Duur: duration},
	})
}

// Leaderboard handles GET /leaderboard. The response is a bare array of
// {name, totalTime} rows, sorted descending by accumulated time.
func (h *ClockHandler) Leaderboard(c *fiber.Ctx) error {
	ranks, err := h.clock.Leaderboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(ranks)
}
