package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/api/dto"
	"github.com/spec-kit/staff-portal/internal/auth"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/navigation"
	apperrors "github.com/spec-kit/staff-portal/pkg/util"
)

// LandingHandler serves the landing screen and the current location.
type LandingHandler struct {
	logger *zap.Logger
}

// NewLandingHandler constructs handler.
func NewLandingHandler(logger *zap.Logger) *LandingHandler {
	return &LandingHandler{logger: logger}
}

// Show handles GET /.
func (h *LandingHandler) Show(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	sess.Navigate(navigation.ScreenLanding)

	items, err := sess.Storage().Items(c.UserContext())
	if err != nil {
		return apperrors.NewUnavailable("client storage unavailable", nil)
	}

	view := dto.LandingView{
		Screen: navigation.ScreenLanding.Name(),
		Links: []dto.ScreenLink{
			{Name: navigation.ScreenRegister.Name(), Path: navigation.ScreenRegister.Path()},
			{Name: navigation.ScreenLogin.Name(), Path: navigation.ScreenLogin.Path()},
		},
	}

	if result, ok := domain.LoginResultFromItems(items); ok {
		user := &dto.SignedInAs{UserID: result.UserID, Email: result.Email, Role: result.Role}
		if info, err := auth.InspectToken(result.Token); err == nil {
			if !info.ExpiresAt.IsZero() {
				exp := info.ExpiresAt.UTC()
				user.TokenExpiresAt = &exp
			}
			user.TokenExpired = info.Expired(time.Now())
		} else {
			h.logger.Debug("stored token is not a JWT", zap.String("session_id", sess.ID), zap.Error(err))
		}
		view.SignedIn = true
		view.User = user
	}

	return c.JSON(view)
}

// Location handles GET /session/location so a browser can follow timed redirects.
func (h *LandingHandler) Location(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	loc := sess.Location()
	return c.JSON(dto.LocationResponse{Screen: loc.Name(), Path: loc.Path()})
}
