package flow

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
)

// Display texts of the verification screen.
const (
	VerificationFailed    = "Verification failed"
	VerificationNoToken   = "No verification token provided. Please use the link from your email."
	VerificationSucceeded = "Successfully verified"
	VerificationFallback  = "Invalid or expired token."
)

// VerificationAPI is the slice of the transport client the verify screen uses.
type VerificationAPI interface {
	ErrorReporter
	VerifyEmail(ctx context.Context, token string) (any, error)
}

// VerificationView is what the verify screen renders.
type VerificationView struct {
	domain.VerificationOutcome
	Redirect *Redirect `json:"redirect,omitempty"`
}

// Verification drives the email verification screen. It submits its token
// once, when the screen is entered.
type Verification struct {
	base
	api VerificationAPI

	started  bool
	outcome  domain.VerificationOutcome
	redirect *Redirect
}

// NewVerification builds a verify screen in the loading state.
func NewVerification(api VerificationAPI, deps Deps) *Verification {
	return &Verification{
		base:    newBase(deps),
		api:     api,
		outcome: domain.VerificationOutcome{Status: domain.VerificationLoading},
	}
}

// View returns the current screen state.
func (v *Verification) View() VerificationView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewLocked()
}

func (v *Verification) viewLocked() VerificationView {
	return VerificationView{VerificationOutcome: v.outcome, Redirect: v.redirect}
}

// Init runs the verification for token. An empty token fails at once without
// a backend call. Later calls return the settled view without resubmitting.
func (v *Verification) Init(ctx context.Context, token string) VerificationView {
	v.mu.Lock()
	if v.started || v.closed {
		defer v.mu.Unlock()
		return v.viewLocked()
	}
	v.started = true

	if token == "" {
		v.outcome = domain.VerificationOutcome{
			Status:       domain.VerificationError,
			Message:      VerificationFailed,
			ErrorDetails: VerificationNoToken,
		}
		view := v.viewLocked()
		v.mu.Unlock()

		v.deps.Logger.Info("verification opened without token")
		v.publish(ctx, events.EventVerificationFailed, events.VerificationPayload{TokenPresent: false})
		return view
	}
	v.mu.Unlock()

	resp, err := v.api.VerifyEmail(ctx, token)

	v.mu.Lock()
	if err != nil {
		v.outcome = domain.VerificationOutcome{
			Status:       domain.VerificationError,
			Message:      VerificationFailed,
			ErrorDetails: v.api.ErrorMessage(err, VerificationFallback),
		}
		view := v.viewLocked()
		v.mu.Unlock()

		v.deps.Logger.Warn("verification failed", zap.Error(err))
		v.publish(ctx, events.EventVerificationFailed, events.VerificationPayload{TokenPresent: true, HTTPStatus: apiclient.StatusCode(err)})
		return view
	}

	message, ok := resp.(string)
	if !ok {
		message = VerificationSucceeded
	}
	v.outcome = domain.VerificationOutcome{Status: domain.VerificationSuccess, Message: message}
	if !v.closed {
		v.redirect = v.scheduleLocked(navigation.ScreenLogin, v.deps.RedirectDelay)
	}
	view := v.viewLocked()
	v.mu.Unlock()

	v.deps.Logger.Info("email verified")
	v.publish(ctx, events.EventVerificationSucceeded, events.VerificationPayload{TokenPresent: true})
	return view
}
