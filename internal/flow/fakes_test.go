package flow

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/domain"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/scheduler"
)

// fakeAPI stands in for the backend and records every call.
type fakeAPI struct {
	*apiclient.Client

	mu          sync.Mutex
	employee    []domain.RegistrationRequest
	manager     []domain.RegistrationRequest
	logins      []domain.Credentials
	verifyCalls []string
	deptCalls   int

	registerResp domain.MessageResponse
	loginResp    domain.LoginResult
	verifyResp   any
	departments  []domain.Department
	err          error

	// when set, calls signal entered and wait on release
	entered chan struct{}
	release chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{Client: apiclient.New(apiclient.Config{BaseURL: "http://localhost:5078/api"})}
}

func (f *fakeAPI) wait() {
	if f.entered == nil {
		return
	}
	f.entered <- struct{}{}
	<-f.release
}

func (f *fakeAPI) RegisterEmployee(_ context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error) {
	f.mu.Lock()
	f.employee = append(f.employee, req)
	f.mu.Unlock()
	f.wait()
	return f.registerResp, f.err
}

func (f *fakeAPI) RegisterManager(_ context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error) {
	f.mu.Lock()
	f.manager = append(f.manager, req)
	f.mu.Unlock()
	f.wait()
	return f.registerResp, f.err
}

func (f *fakeAPI) GetDepartments(context.Context) ([]domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deptCalls++
	return f.departments, f.err
}

func (f *fakeAPI) Login(_ context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	f.mu.Lock()
	f.logins = append(f.logins, creds)
	f.mu.Unlock()
	f.wait()
	return f.loginResp, f.err
}

func (f *fakeAPI) VerifyEmail(_ context.Context, token string) (any, error) {
	f.mu.Lock()
	f.verifyCalls = append(f.verifyCalls, token)
	f.mu.Unlock()
	return f.verifyResp, f.err
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.employee) + len(f.manager) + len(f.logins) + len(f.verifyCalls)
}

// recordingNavigator remembers every navigation.
type recordingNavigator struct {
	mu   sync.Mutex
	seen []navigation.Screen
}

func (n *recordingNavigator) Navigate(to navigation.Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, to)
}

func (n *recordingNavigator) all() []navigation.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]navigation.Screen(nil), n.seen...)
}

type harness struct {
	nav    *recordingNavigator
	clock  *scheduler.Manual
	events []events.Event
	deps   Deps
}

func newHarness() *harness {
	h := &harness{nav: &recordingNavigator{}, clock: scheduler.NewManual(time.Unix(0, 0))}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.AllEventTypes {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			h.events = append(h.events, e)
			return nil
		})
	}
	h.deps = Deps{
		Navigator:     h.nav,
		Scheduler:     h.clock,
		Events:        dispatcher,
		SessionID:     "session-1",
		RedirectDelay: 3 * time.Second,
	}
	return h
}

func (h *harness) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}
