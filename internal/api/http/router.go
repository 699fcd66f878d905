package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-portal/internal/api/http/handlers"
	"github.com/spec-kit/staff-portal/internal/navigation"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Landing  *handlers.LandingHandler
	Register *handlers.RegisterHandler
	Login    *handlers.LoginHandler
	Verify   *handlers.VerifyHandler
	Session  fiber.Handler
}

// RegisterRoutes wires HTTP routes. Probes and metrics sit outside the
// visitor session; every screen route gets one.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	screens := app.Group("", cfg.Session)
	screens.Get(navigation.ScreenLanding.Path(), cfg.Landing.Show)
	screens.Get(navigation.ScreenRegister.Path(), cfg.Register.Show)
	screens.Post(navigation.ScreenRegister.Path(), cfg.Register.Submit)
	screens.Get(navigation.ScreenLogin.Path(), cfg.Login.Show)
	screens.Post(navigation.ScreenLogin.Path(), cfg.Login.Submit)
	screens.Get(navigation.ScreenVerify.Path(), cfg.Verify.Show)
	screens.Get("/session/location", cfg.Landing.Location)

	app.Use(func(c *fiber.Ctx) error {
		if _, ok := navigation.Resolve(c.Path()); !ok {
			return c.Redirect(navigation.ScreenLanding.Path(), fiber.StatusFound)
		}
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	})
}
