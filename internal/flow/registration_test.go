package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/validation"
)

func employeeForm() validation.RegistrationForm {
	return validation.RegistrationForm{
		Name:         " Ada Lovelace ",
		Email:        " Ada@Example.com ",
		Password:     "secret1",
		Role:         domain.RoleEmployee,
		DepartmentID: 2,
	}
}

func TestRegistrationEmployeeSuccessRedirectsAfterDelay(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	api.registerResp = domain.MessageResponse{Message: "Registered. Check your email."}
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	view, err := reg.Submit(context.Background(), employeeForm())
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, view.State)
	assert.Equal(t, "Registered. Check your email.", view.SuccessMessage)
	require.NotNil(t, view.Redirect)
	assert.Equal(t, &Redirect{To: "/login", AfterMS: 3000}, view.Redirect)

	require.Len(t, api.employee, 1)
	sent := api.employee[0]
	assert.Equal(t, "Ada Lovelace", sent.Name)
	assert.Equal(t, "ada@example.com", sent.Email)
	require.NotNil(t, sent.DepartmentID)
	assert.Equal(t, 2, *sent.DepartmentID)
	assert.Empty(t, api.manager)

	h.clock.Advance(2 * time.Second)
	assert.Empty(t, h.nav.all())
	h.clock.Advance(time.Second)
	assert.Equal(t, []navigation.Screen{navigation.ScreenLogin}, h.nav.all())

	assert.Equal(t, []events.EventType{events.EventRegistrationSucceeded}, h.eventTypes())
}

func TestRegistrationManagerUsesManagerEndpointWithoutDepartment(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	form := employeeForm()
	form.Role = domain.RoleManager
	form.DepartmentID = 0

	view, err := reg.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, view.State)

	require.Len(t, api.manager, 1)
	assert.Nil(t, api.manager[0].DepartmentID)
	assert.Empty(t, api.employee)
}

func TestRegistrationMissingDepartmentIsRejectedLocally(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	form := employeeForm()
	form.DepartmentID = 0

	view, err := reg.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, "Please select a department", view.ErrorMessage)
	assert.Equal(t, 0, api.calls())
	assert.Empty(t, h.events)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestRegistrationBackendFailureAllowsResubmit(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	api.err = &apiclient.Error{Status: 409, Body: map[string]any{"message": "Email already registered"}}
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	view, err := reg.Submit(context.Background(), employeeForm())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, "Email already registered", view.ErrorMessage)
	assert.Nil(t, view.Redirect)

	api.err = &apiclient.Error{Status: 500}
	view, err = reg.Submit(context.Background(), employeeForm())
	require.NoError(t, err)
	assert.Equal(t, RegistrationFallback, view.ErrorMessage)
	assert.Len(t, api.employee, 2)
	assert.Equal(t, []events.EventType{events.EventRegistrationFailed, events.EventRegistrationFailed}, h.eventTypes())
}

func TestRegistrationRejectsDuplicateSubmit(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	api.entered = make(chan struct{})
	api.release = make(chan struct{})
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	done := make(chan RegistrationView)
	go func() {
		view, _ := reg.Submit(context.Background(), employeeForm())
		done <- view
	}()
	<-api.entered

	assert.Equal(t, StateSubmitting, reg.View().State)
	_, err := reg.Submit(context.Background(), employeeForm())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.True(t, IsRefused(err))

	close(api.release)
	view := <-done
	assert.Equal(t, StateSuccess, view.State)
	assert.Len(t, api.employee, 1)
}

func TestRegistrationCloseCancelsRedirect(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	reg := NewRegistration(api, h.deps, RegistrationOptions{})

	_, err := reg.Submit(context.Background(), employeeForm())
	require.NoError(t, err)
	assert.Equal(t, 1, h.clock.Pending())

	reg.Close()
	assert.Equal(t, 0, h.clock.Pending())
	h.clock.Advance(time.Minute)
	assert.Empty(t, h.nav.all())

	_, err = reg.Submit(context.Background(), employeeForm())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRegistrationInitLoadsRemoteDepartments(t *testing.T) {
	h := newHarness()
	api := newFakeAPI()
	api.departments = []domain.Department{{DepartmentID: 9, DepartmentName: "Legal"}}
	reg := NewRegistration(api, h.deps, RegistrationOptions{RemoteDepartments: true})

	view := reg.Init(context.Background())
	assert.Equal(t, api.departments, view.Departments)
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, []domain.Role{domain.RoleEmployee, domain.RoleManager}, view.Roles)
}

func TestRegistrationInitFallsBackToDefaults(t *testing.T) {
	h := newHarness()

	failing := newFakeAPI()
	failing.err = errors.New("down")
	view := NewRegistration(failing, h.deps, RegistrationOptions{RemoteDepartments: true}).Init(context.Background())
	assert.Equal(t, domain.DefaultDepartments(), view.Departments)

	empty := newFakeAPI()
	view = NewRegistration(empty, h.deps, RegistrationOptions{RemoteDepartments: true}).Init(context.Background())
	assert.Equal(t, domain.DefaultDepartments(), view.Departments)

	local := newFakeAPI()
	view = NewRegistration(local, h.deps, RegistrationOptions{}).Init(context.Background())
	assert.Equal(t, domain.DefaultDepartments(), view.Departments)
	assert.Equal(t, 0, local.deptCalls)
}
