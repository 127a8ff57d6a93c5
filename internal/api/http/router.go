package http

import (
	"embed"

	"github.com/gofiber/fiber/v2"

	"github.com/alkmaar-rp/supportbot/internal/api/http/handlers"
)

//go:embed static/*.html
var staticPages embed.FS

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Clock   *handlers.ClockHandler
	Signoff *handlers.SignoffHandler
}

// RegisterRoutes wires HTTP routes: the staff pages, the clock and signoff
// APIs and the health probes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", servePage("static/signoff.html"))
	app.Get("/clock", servePage("static/clock.html"))

	app.Post("/signoff", cfg.Signoff.Submit)
	app.Post("/clockin", cfg.Clock.ClockIn)
	app.Post("/clockout", cfg.Clock.ClockOut)
	app.Get("/leaderboard", cfg.Clock.Leaderboard)
}

func servePage(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := staticPages.ReadFile(name)
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Type("html", "utf-8")
		return c.Send(page)
	}
}
