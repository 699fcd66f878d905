package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-portal/internal/api/dto"
	"github.com/spec-kit/staff-portal/internal/flow"
	"github.com/spec-kit/staff-portal/internal/navigation"
)

// VerifyHandler serves the email verification screen.
type VerifyHandler struct {
	screens Screens
}

// NewVerifyHandler constructs handler.
func NewVerifyHandler(screens Screens) *VerifyHandler {
	return &VerifyHandler{screens: screens}
}

// Show handles GET /verify?token=. Every visit is a new screen that submits
// its token once.
func (h *VerifyHandler) Show(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}
	verify := sess.Enter(navigation.ScreenVerify, h.screens.verification(sess)).(*flow.Verification)
	view := verify.Init(c.UserContext(), c.Query("token"))
	return c.JSON(dto.ScreenResponse{Screen: navigation.ScreenVerify.Name(), View: view})
}
