// Package jobmgr runs named background jobs, at most one per name, with
// cancellation and lifecycle reporting.
//
//	jm := jobmgr.NewManager(func(ev jobmgr.Event) {
//	    log.Println(ev)
//	})
//	err := jm.StartAsync(ctx, "slash-sync:123", func(ctx context.Context) error {
//	    return sync(ctx)
//	})
//	// on shutdown
//	jm.Wait()
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrRunning is returned when a job of the same name is still active.
var ErrRunning = errors.New("job already running")

// ErrNotRunning is returned by Stop for unknown names.
var ErrNotRunning = errors.New("job not running")

// State is a lifecycle step of a job.
type State string

const (
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "error"
)

// Event is delivered to the reporter on each lifecycle step.
type Event struct {
	Job   string
	State State
	Err   error
}

func (e Event) String() string {
	if e.Err != nil {
		return string(e.State) + ":" + e.Job + ":" + e.Err.Error()
	}
	return string(e.State) + ":" + e.Job
}

// Reporter receives lifecycle events. It may be called concurrently.
type Reporter func(Event)

// Manager tracks running jobs. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]context.CancelFunc
	wg       sync.WaitGroup
	reporter Reporter
}

// NewManager returns a manager. reporter may be nil.
func NewManager(reporter Reporter) *Manager {
	return &Manager{
		jobs:     make(map[string]context.CancelFunc),
		reporter: reporter,
	}
}

// StartAsync runs runner in its own goroutine under a child of ctx. The
// job is forgotten once runner returns.
func (m *Manager) StartAsync(ctx context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRunning, name)
	}
	jobCtx, cancel := context.WithCancel(ctx)
	m.jobs[name] = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.report(Event{Job: name, State: StateRunning})
		if err := runner(jobCtx); err != nil {
			m.report(Event{Job: name, State: StateFailed, Err: err})
		} else {
			m.report(Event{Job: name, State: StateDone})
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
	}()
	return nil
}

// Stop cancels a running job.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	cancel, ok := m.jobs[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, name)
	}
	cancel()
	return nil
}

// List returns the sorted names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Status summarizes active jobs on one line.
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return "Running jobs: " + strings.Join(active, ", ")
}

// Wait blocks until every started job has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) report(ev Event) {
	if m.reporter != nil {
		m.reporter(ev)
	}
}
