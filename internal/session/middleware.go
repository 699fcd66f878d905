package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const localsKey = "portal_session"

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Middleware attaches a Session to every request and keeps the cookie fresh.
func Middleware(m *Manager, cookie CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Cookies aliases the request buffer; the manager keeps the id.
		sent := utils.CopyString(c.Cookies(cookie.Name))
		s, created := m.Acquire(sent)
		if created || sent != s.ID {
			c.Cookie(&fiber.Cookie{
				Name:     cookie.Name,
				Value:    s.ID,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				Secure:   cookie.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localsKey, s)
		return c.Next()
	}
}

// FromContext returns the request's session.
func FromContext(c *fiber.Ctx) (*Session, bool) {
	s, ok := c.Locals(localsKey).(*Session)
	return s, ok
}
