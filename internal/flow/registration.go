package flow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/validation"
)

// RegistrationFallback is shown when a failed registration carries no readable reason.
const RegistrationFallback = "Registration failed. Please try again."

// RegistrationAPI is the slice of the transport client the registration screen uses.
type RegistrationAPI interface {
	ErrorReporter
	RegisterEmployee(ctx context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error)
	RegisterManager(ctx context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error)
	GetDepartments(ctx context.Context) ([]domain.Department, error)
}

// RegistrationView is what the registration screen renders.
type RegistrationView struct {
	State          State               `json:"state"`
	ErrorMessage   string              `json:"errorMessage,omitempty"`
	SuccessMessage string              `json:"successMessage,omitempty"`
	Departments    []domain.Department `json:"departments"`
	Roles          []domain.Role       `json:"roles"`
	Redirect       *Redirect           `json:"redirect,omitempty"`
}

// RegistrationOptions tunes department loading.
type RegistrationOptions struct {
	RemoteDepartments bool
}

// Registration drives the sign-up screen for employees and managers.
type Registration struct {
	base
	api  RegistrationAPI
	opts RegistrationOptions

	departments    []domain.Department
	errorMessage   string
	successMessage string
	redirect       *Redirect
}

// NewRegistration builds a registration screen with the static department list loaded.
func NewRegistration(api RegistrationAPI, deps Deps, opts RegistrationOptions) *Registration {
	return &Registration{
		base:        newBase(deps),
		api:         api,
		opts:        opts,
		departments: domain.DefaultDepartments(),
	}
}

// Init loads the department choices. When the backend list cannot be fetched
// or is empty the static list stays in place.
func (r *Registration) Init(ctx context.Context) RegistrationView {
	if r.opts.RemoteDepartments {
		depts, err := r.api.GetDepartments(ctx)
		switch {
		case err != nil:
			r.deps.Logger.Warn("department list unavailable; using defaults", zap.Error(err))
		case len(depts) == 0:
			r.deps.Logger.Warn("backend returned no departments; using defaults")
		default:
			r.mu.Lock()
			r.departments = depts
			r.mu.Unlock()
		}
	}
	return r.View()
}

// View returns the current screen state.
func (r *Registration) View() RegistrationView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Registration) viewLocked() RegistrationView {
	return RegistrationView{
		State:          r.state,
		ErrorMessage:   r.errorMessage,
		SuccessMessage: r.successMessage,
		Departments:    append([]domain.Department(nil), r.departments...),
		Roles:          []domain.Role{domain.RoleEmployee, domain.RoleManager},
		Redirect:       r.redirect,
	}
}

// Submit validates the form and, when it passes, registers the account.
// The returned error is non-nil only when the submit was refused outright
// (ErrSubmissionInFlight, ErrClosed); validation and backend failures are
// reported through the view.
func (r *Registration) Submit(ctx context.Context, form validation.RegistrationForm) (RegistrationView, error) {
	if err := r.begin(); err != nil {
		return r.View(), err
	}

	r.mu.Lock()
	r.errorMessage = ""
	r.successMessage = ""
	r.redirect = nil
	if err := validation.Registration(form); err != nil {
		r.state = StateIdle
		r.errorMessage = err.Error()
		r.busy = false
		view := r.viewLocked()
		r.mu.Unlock()
		return view, nil
	}
	r.state = StateSubmitting
	r.mu.Unlock()

	req := validation.RegistrationRequest(form)
	call := r.api.RegisterEmployee
	if form.Role == domain.RoleManager {
		call = r.api.RegisterManager
	}

	resp, err := call(ctx, req)

	payload := events.RegistrationPayload{Role: string(form.Role), Email: req.Email, HTTPStatus: apiclient.StatusCode(err)}
	logger := r.deps.Logger.With(zap.String("role", string(form.Role)), zap.String("email", req.Email))

	r.mu.Lock()
	r.busy = false
	if err != nil {
		r.state = StateIdle
		r.errorMessage = r.api.ErrorMessage(err, RegistrationFallback)
		view := r.viewLocked()
		r.mu.Unlock()

		logger.Warn("registration failed", zap.Error(err))
		r.publish(ctx, events.EventRegistrationFailed, payload)
		return view, nil
	}

	r.state = StateSuccess
	r.successMessage = resp.Message
	if !r.closed {
		r.redirect = r.scheduleLocked(navigation.ScreenLogin, r.deps.RedirectDelay)
	}
	view := r.viewLocked()
	r.mu.Unlock()

	logger.Info("registration submitted")
	r.publish(ctx, events.EventRegistrationSucceeded, payload)
	return view, nil
}

// IsRefused reports whether err means the submit never started.
func IsRefused(err error) bool {
	return errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrClosed)
}
