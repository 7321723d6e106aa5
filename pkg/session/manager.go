package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/internal/recognizer"
	"github.com/aretw0/gestures/pkg/clock"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
)

// surfaceEntry holds the recognizer of a surface and the lock serializing it.
type surfaceEntry struct {
	mu     sync.Mutex
	engine *recognizer.Engine
	closed bool
}

// Builder creates the recognizer of a new surface. It must pass sched to the
// recognizer so timer firings take the surface lock.
type Builder func(sched ports.Scheduler) (*recognizer.Engine, error)

// Manager orchestrates surface access, ensuring safe concurrent operations.
type Manager struct {
	mu       sync.Mutex // Global lock for the map
	surfaces map[string]*surfaceEntry

	sched  ports.Scheduler
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithScheduler sets the scheduler shared by every surface.
func WithScheduler(s ports.Scheduler) Option {
	return func(m *Manager) {
		m.sched = s
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		surfaces: make(map[string]*surfaceEntry),
		sched:    clock.Real{},
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach registers a surface and builds its recognizer.
func (m *Manager) Attach(id string, build Builder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.surfaces[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceExists, id)
	}
	entry := &surfaceEntry{}
	engine, err := build(&lockedScheduler{base: m.sched, entry: entry})
	if err != nil {
		return fmt.Errorf("failed to build recognizer for %s: %w", id, err)
	}
	entry.engine = engine
	m.surfaces[id] = entry
	m.logger.Debug("surface attached", "surface", id)
	return nil
}

// Detach closes the recognizer of a surface and forgets it. Pending timers
// are cancelled and in-flight firings become no-ops.
func (m *Manager) Detach(id string) error {
	m.mu.Lock()
	entry, exists := m.surfaces[id]
	delete(m.surfaces, id)
	m.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceNotFound, id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.engine.Close()
	entry.closed = true
	m.logger.Debug("surface detached", "surface", id)
	return nil
}

// WithSurface runs fn while holding the lock of the surface.
// fn must not call back into the Manager for the same surface.
func (m *Manager) WithSurface(id string, fn func(*recognizer.Engine) error) error {
	m.mu.Lock()
	entry, exists := m.surfaces[id]
	m.mu.Unlock()
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceNotFound, id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.closed {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceNotFound, id)
	}
	return fn(entry.engine)
}

// Each runs fn on every attached surface, one at a time, in ID order.
// It stops at the first error.
func (m *Manager) Each(fn func(id string, engine *recognizer.Engine) error) error {
	for _, id := range m.List() {
		err := m.WithSurface(id, func(e *recognizer.Engine) error {
			return fn(id, e)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns the attached surface IDs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.surfaces))
	for id := range m.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of attached surfaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.surfaces)
}

// Close detaches every surface.
func (m *Manager) Close() {
	for _, id := range m.List() {
		_ = m.Detach(id)
	}
}

// Scheduler returns the scheduler shared by the surfaces.
func (m *Manager) Scheduler() ports.Scheduler {
	return m.sched
}

// lockedScheduler runs timer callbacks under the surface lock and drops them
// once the surface is detached.
type lockedScheduler struct {
	base  ports.Scheduler
	entry *surfaceEntry
}

func (s *lockedScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	return s.base.AfterFunc(d, func() {
		s.entry.mu.Lock()
		defer s.entry.mu.Unlock()
		if s.entry.closed {
			return
		}
		f()
	})
}

func (s *lockedScheduler) Now() time.Time {
	return s.base.Now()
}
