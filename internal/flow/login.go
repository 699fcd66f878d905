package flow

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/storage"
	"github.com/spec-kit/staff-portal/internal/validation"
)

// Display texts of the login screen.
const (
	LoginFallback       = "Invalid email or password"
	LoginStorageFailure = "Signed in, but your session could not be saved. Please try again."
)

// LoginAPI is the slice of the transport client the login screen uses.
type LoginAPI interface {
	ErrorReporter
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
}

// LoginView is what the login screen renders.
type LoginView struct {
	State        State     `json:"state"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Redirect     *Redirect `json:"redirect,omitempty"`
}

// Login drives the sign-in screen.
type Login struct {
	base
	api   LoginAPI
	store storage.KeyValue

	errorMessage string
	redirect     *Redirect
}

// NewLogin builds a login screen that persists results into store.
func NewLogin(api LoginAPI, store storage.KeyValue, deps Deps) *Login {
	return &Login{base: newBase(deps), api: api, store: store}
}

// View returns the current screen state.
func (l *Login) View() LoginView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked()
}

func (l *Login) viewLocked() LoginView {
	return LoginView{State: l.state, ErrorMessage: l.errorMessage, Redirect: l.redirect}
}

// Submit validates the credentials and signs in. On success the four login
// fields are stored in one write and the visitor is sent to the landing
// screen straight away. The returned error follows Registration.Submit.
func (l *Login) Submit(ctx context.Context, creds domain.Credentials) (LoginView, error) {
	if err := l.begin(); err != nil {
		return l.View(), err
	}

	l.mu.Lock()
	l.errorMessage = ""
	l.redirect = nil
	if err := validation.Login(creds); err != nil {
		l.state = StateIdle
		l.errorMessage = err.Error()
		l.busy = false
		view := l.viewLocked()
		l.mu.Unlock()
		return view, nil
	}
	l.state = StateSubmitting
	l.mu.Unlock()

	outbound := validation.LoginRequest(creds)
	logger := l.deps.Logger.With(zap.String("email", outbound.Email))

	result, err := l.api.Login(ctx, outbound)
	if err != nil {
		return l.fail(ctx, logger, l.api.ErrorMessage(err, LoginFallback), err,
			events.LoginPayload{Email: outbound.Email, HTTPStatus: apiclient.StatusCode(err)})
	}

	if err := l.store.SetItems(ctx, result.StorageItems()); err != nil {
		return l.fail(ctx, logger, LoginStorageFailure, err,
			events.LoginPayload{Email: outbound.Email, UserID: result.UserID, Role: result.Role})
	}

	l.mu.Lock()
	l.busy = false
	l.state = StateSuccess
	closed := l.closed
	if !closed {
		l.redirect = &Redirect{To: navigation.ScreenLanding.Path()}
	}
	view := l.viewLocked()
	l.mu.Unlock()

	logger.Info("login succeeded", zap.String("user_id", result.UserID), zap.String("role", result.Role))
	l.publish(ctx, events.EventLoginSucceeded, events.LoginPayload{Email: outbound.Email, UserID: result.UserID, Role: result.Role})
	if !closed {
		l.deps.Navigator.Navigate(navigation.ScreenLanding)
	}
	return view, nil
}

func (l *Login) fail(ctx context.Context, logger *zap.Logger, message string, cause error, payload events.LoginPayload) (LoginView, error) {
	l.mu.Lock()
	l.busy = false
	l.state = StateIdle
	l.errorMessage = message
	view := l.viewLocked()
	l.mu.Unlock()

	logger.Warn("login failed", zap.Error(cause))
	l.publish(ctx, events.EventLoginFailed, payload)
	return view, nil
}
