package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/internal/logging"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates live traversal sessions, ensuring a session is never
// stepped concurrently. It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store  ports.SessionStore
	loader ports.GraphLoader

	mu      sync.Mutex                    // Global lock for the maps
	locks   map[string]*lockEntry         // Map of active locks
	engines map[string]*minimaxviz.Engine // Engine bound to each session

	listeners []func(sessionID string, diff *domain.StateDiff)

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLoader lets Open resolve graphs by name.
func WithLoader(loader ports.GraphLoader) Option {
	return func(m *Manager) {
		m.loader = loader
	}
}

// WithLifecycleHooks registers hooks on every session engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithIDGenerator overrides the session ID source (default: random UUIDs).
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Session Manager backed by store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		engines: make(map[string]*minimaxviz.Engine),
		logger:  logging.NewNop(), // Default to no-op
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager) engine(sessionID string) (*minimaxviz.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eng, ok := m.engines[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return eng, nil
}

// Create starts a new session over nodes. Construction errors (malformed
// graph, unknown algorithm) are returned immediately.
func (m *Manager) Create(ctx context.Context, graphName string, nodes []domain.GraphNode, alg domain.Algorithm) (*domain.Session, error) {
	alg, err := domain.ParseAlgorithm(string(alg))
	if err != nil {
		return nil, err
	}
	id := m.newID()
	eng, err := minimaxviz.New(nodes,
		minimaxviz.WithAlgorithm(alg),
		minimaxviz.WithName(graphName),
		minimaxviz.WithLifecycleHooks(m.hooks),
		minimaxviz.WithLogger(m.logger.With("session_id", id)),
	)
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := &domain.Session{
		ID:        id,
		Graph:     graphName,
		Algorithm: alg,
		CreatedAt: now,
		UpdatedAt: now,
		State:     eng.Start(),
	}

	err = m.WithLock(ctx, id, func(ctx context.Context) error {
		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		m.mu.Lock()
		m.engines[id] = eng
		m.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("session created", "session_id", id, "graph", graphName, "algorithm", string(alg))
	return sess.Clone(), nil
}

// Open resolves graphName through the configured loader and creates a session.
func (m *Manager) Open(ctx context.Context, graphName string, alg domain.Algorithm) (*domain.Session, error) {
	if m.loader == nil {
		return nil, errors.New("session manager has no graph loader")
	}
	doc, err := m.loader.Load(ctx, graphName)
	if err != nil {
		return nil, err
	}
	return m.Create(ctx, graphName, doc.Nodes, alg)
}

// load reads a session. The caller holds the lock.
func (m *Manager) load(ctx context.Context, sessionID string, eng *minimaxviz.Engine) (*domain.Session, error) {
	sess, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State == nil {
		sess.State = eng.Start()
	}
	return sess, nil
}

// OnChange registers fn to receive the diff of every step and restart.
// fn runs while the session is locked, so diffs of one session arrive in
// order; it must not block nor call back into the Manager.
func (m *Manager) OnChange(fn func(sessionID string, diff *domain.StateDiff)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// notify runs the change listeners. The caller holds the session lock.
func (m *Manager) notify(sessionID string, diff *domain.StateDiff) {
	if diff == nil {
		return
	}
	m.mu.Lock()
	listeners := m.listeners
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(sessionID, diff)
	}
}

// View calls fn with a copy of the session while holding its lock. No step
// or restart can happen until fn returns.
func (m *Manager) View(ctx context.Context, sessionID string, fn func(*domain.Session) error) error {
	eng, err := m.engine(sessionID)
	if err != nil {
		return err
	}
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.load(ctx, sessionID, eng)
		if err != nil {
			return err
		}
		return fn(sess)
	})
}

// Snapshot returns a copy of the session.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.View(ctx, sessionID, func(s *domain.Session) error {
		sess = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Step advances the session by up to n micro-steps (at least one), stopping
// early once the traversal is finished. It returns the updated session and
// the diff against the state before the call, nil when nothing changed.
//
// If a step fails the halted state is still saved, so the failure is visible
// on later snapshots.
func (m *Manager) Step(ctx context.Context, sessionID string, n int) (*domain.Session, *domain.StateDiff, error) {
	if n < 1 {
		n = 1
	}
	eng, err := m.engine(sessionID)
	if err != nil {
		return nil, nil, err
	}

	var (
		sess *domain.Session
		diff *domain.StateDiff
	)
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.load(ctx, sessionID, eng)
		if err != nil {
			return err
		}
		before := sess.State.Snapshot()

		var stepErr error
		for i := 0; i < n && !sess.State.Finished(); i++ {
			if stepErr = eng.Step(ctx, sess.State); stepErr != nil {
				break
			}
		}

		diff = domain.Diff(before, sess.State)
		sess.UpdatedAt = m.now()
		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.notify(sessionID, diff)
		return stepErr
	})
	if err != nil {
		m.logger.Warn("step failed", "session_id", sessionID, "err", err)
	}
	return sess, diff, err
}

// Restart discards the traversal of a session and starts over on the same
// graph and algorithm.
func (m *Manager) Restart(ctx context.Context, sessionID string) (*domain.Session, error) {
	eng, err := m.engine(sessionID)
	if err != nil {
		return nil, err
	}

	var sess *domain.Session
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.load(ctx, sessionID, eng)
		if err != nil {
			return err
		}
		sess.State = eng.Start()
		sess.UpdatedAt = m.now()
		if err := m.store.Save(ctx, sess); err != nil {
			return err
		}
		m.notify(sessionID, domain.Diff(nil, sess.State))
		return nil
	})
	if err == nil {
		m.logger.Debug("session restarted", "session_id", sessionID)
	}
	return sess, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		delete(m.engines, sessionID)
		m.mu.Unlock()
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Len returns the number of sessions created by this manager and not yet
// deleted.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.engines)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Loader returns the graph loader, if any.
func (m *Manager) Loader() ports.GraphLoader {
	return m.loader
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
