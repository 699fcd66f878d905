package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-portal/internal/api/dto"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/flow"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/validation"
	apperrors "github.com/spec-kit/staff-portal/pkg/util"
)

// RegisterHandler serves the registration screen.
type RegisterHandler struct {
	screens Screens
}

// NewRegisterHandler constructs handler.
func NewRegisterHandler(screens Screens) *RegisterHandler {
	return &RegisterHandler{screens: screens}
}

// Show handles GET /register: a fresh screen with departments loaded.
func (h *RegisterHandler) Show(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	reg := sess.Enter(navigation.ScreenRegister, h.screens.registration(sess)).(*flow.Registration)
	return c.JSON(dto.ScreenResponse{Screen: navigation.ScreenRegister.Name(), View: reg.Init(c.UserContext())})
}

// Submit handles POST /register.
func (h *RegisterHandler) Submit(c *fiber.Ctx) error {
	var req dto.RegisterForm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	reg, ok := sess.Current(navigation.ScreenRegister, h.screens.registration(sess)).(*flow.Registration)
	if !ok {
		return apperrors.NewInternalError(nil)
	}

	view, err := reg.Submit(c.UserContext(), validation.RegistrationForm{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         domain.ParseRole(req.Role),
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return refusal(err)
	}
	return c.JSON(dto.ScreenResponse{Screen: navigation.ScreenRegister.Name(), View: view})
}
