// Package flow implements the registration, login and verification screens:
// local validation, one backend submission at a time, and the resulting
// navigation. Flows are independent of HTTP; the portal handlers drive them.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/scheduler"
)

// DefaultRedirectDelay is how long success screens stay up before moving on.
const DefaultRedirectDelay = 3 * time.Second

// State is the lifecycle position of a submitting flow. A rejected submit
// returns to StateIdle with its error message set.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

var (
	// ErrSubmissionInFlight rejects a submit while the previous one is outstanding.
	ErrSubmissionInFlight = errors.New("flow: submission already in flight")
	// ErrClosed rejects calls on a screen that has been torn down.
	ErrClosed = errors.New("flow: screen closed")
)

// ErrorReporter formats backend failures for display.
type ErrorReporter interface {
	ErrorMessage(err error, fallback string) string
}

// Redirect describes a navigation the flow has triggered or scheduled.
type Redirect struct {
	To      string `json:"to"`
	AfterMS int64  `json:"afterMs"`
}

// Deps are the collaborators shared by every flow.
type Deps struct {
	Navigator     navigation.Navigator
	Scheduler     scheduler.Scheduler
	Events        events.Dispatcher
	Logger        *zap.Logger
	SessionID     string
	RedirectDelay time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Navigator == nil {
		d.Navigator = navigation.NavigatorFunc(func(navigation.Screen) {})
	}
	if d.Scheduler == nil {
		d.Scheduler = scheduler.NewTimer()
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.RedirectDelay <= 0 {
		d.RedirectDelay = DefaultRedirectDelay
	}
	return d
}

// base holds the state machine shared by the submitting flows.
// Callers of the unexported helpers must hold mu unless noted.
type base struct {
	deps Deps

	mu     sync.Mutex
	state  State
	busy   bool
	closed bool
	tasks  []scheduler.Task
}

func newBase(deps Deps) base {
	return base{deps: deps.withDefaults(), state: StateIdle}
}

// begin moves the flow into validating. It takes mu itself.
func (b *base) begin() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if b.busy {
		return ErrSubmissionInFlight
	}
	b.busy = true
	b.state = StateValidating
	return nil
}

// scheduleLocked registers a delayed navigation that Close will cancel.
func (b *base) scheduleLocked(to navigation.Screen, delay time.Duration) *Redirect {
	nav := b.deps.Navigator
	logger := b.deps.Logger
	task := b.deps.Scheduler.Schedule(delay, func() {
		logger.Debug("timed redirect", zap.String("to", to.Name()))
		nav.Navigate(to)
	})
	b.tasks = append(b.tasks, task)
	return &Redirect{To: to.Path(), AfterMS: delay.Milliseconds()}
}

// Close tears the screen down and cancels pending redirects. It is safe to
// call more than once and from a redirect callback.
func (b *base) Close() {
	b.mu.Lock()
	tasks := b.tasks
	b.tasks = nil
	b.closed = true
	b.mu.Unlock()

	for _, task := range tasks {
		task.Cancel()
	}
}

// Closed reports whether Close has been called.
func (b *base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *base) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	event := events.NewEvent(eventType, b.deps.SessionID, payload)
	if err := b.deps.Events.Publish(ctx, event); err != nil {
		b.deps.Logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
