package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-portal/internal/api/dto"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/flow"
	"github.com/spec-kit/staff-portal/internal/navigation"
	apperrors "github.com/spec-kit/staff-portal/pkg/util"
)

// LoginHandler serves the login screen.
type LoginHandler struct {
	screens Screens
}

// NewLoginHandler constructs handler.
func NewLoginHandler(screens Screens) *LoginHandler {
	return &LoginHandler{screens: screens}
}

// Show handles GET /login.
func (h *LoginHandler) Show(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	login := sess.Enter(navigation.ScreenLogin, h.screens.login(sess)).(*flow.Login)
	return c.JSON(dto.ScreenResponse{Screen: navigation.ScreenLogin.Name(), View: login.View()})
}

// Submit handles POST /login.
func (h *LoginHandler) Submit(c *fiber.Ctx) error {
	var req dto.LoginForm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	login, ok := sess.Current(navigation.ScreenLogin, h.screens.login(sess)).(*flow.Login)
	if !ok {
		return apperrors.NewInternalError(nil)
	}

	view, err := login.Submit(c.UserContext(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return refusal(err)
	}
	return c.JSON(dto.ScreenResponse{Screen: navigation.ScreenLogin.Name(), View: view})
}
