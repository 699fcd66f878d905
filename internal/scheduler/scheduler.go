// Package scheduler runs delayed callbacks that can be cancelled, such as the
// timed redirects shown after a successful registration or verification.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled callback.
type Task interface {
	// Cancel stops the task. It reports whether the call prevented the run.
	Cancel() bool
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// Timer schedules callbacks on runtime timers.
type Timer struct{}

// NewTimer returns a Scheduler backed by time.AfterFunc.
func NewTimer() Timer {
	return Timer{}
}

// Schedule implements Scheduler.
func (Timer) Schedule(delay time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(delay, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// Manual is a Scheduler driven by an explicit clock. Nothing runs until
// Advance moves the clock past a task's due time.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	owner     *Manual
	due       time.Time
	seq       int
	fn        func()
	done      bool
	cancelled bool
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := &manualTask{owner: m, due: m.now.Add(delay), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

// Now returns the manual clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order, outside the lock.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now = m.now.Add(d)
	var due []*manualTask
	pending := m.tasks[:0]
	for _, task := range m.tasks {
		if task.cancelled || task.done {
			continue
		}
		if !task.due.After(m.now) {
			task.done = true
			due = append(due, task)
			continue
		}
		pending = append(pending, task)
	}
	m.tasks = pending
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, task := range due {
		task.fn()
	}
	return len(due)
}

// Pending counts tasks that have neither run nor been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, task := range m.tasks {
		if !task.cancelled && !task.done {
			n++
		}
	}
	return n
}

func (t *manualTask) Cancel() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}
