package ephemeral

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"zkcli/internal/logging"
	"zkcli/internal/zkclient"
	"zkcli/internal/zpath"
)

// State is the lifecycle position of a registration.
type State int

const (
	Created State = iota
	Deleted
	Abandoned
)

func (s State) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case Abandoned:
		return "abandoned"
	default:
		return "created"
	}
}

// Deleter removes a node. zkclient.Client satisfies it.
type Deleter interface {
	Delete(ctx context.Context, p zpath.Path, expectedVersion int32) error
}

// Registration tracks one ephemeral node created by this process.
type Registration struct {
	Path      zpath.Path
	CreatedAt time.Time
	State     State
	Err       error
}

// Report summarizes a cleanup pass.
type Report struct {
	Deleted   []zpath.Path
	Abandoned []Registration
}

// Manager owns the registrations for the lifetime of the process.
type Manager struct {
	deleter Deleter
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries []*Registration

	once   sync.Once
	report Report
}

// New returns a manager deleting through deleter.
func New(deleter Deleter, logger *slog.Logger) *Manager {
	return &Manager{
		deleter: deleter,
		logger:  logging.NewComponentLogger(logger, "ephemeral"),
		now:     time.Now,
	}
}

// Register records p. Registering a path that is already live is a no-op.
func (m *Manager) Register(p zpath.Path) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.Path.Equal(p) && entry.State == Created {
			return
		}
	}
	m.entries = append(m.entries, &Registration{Path: p, CreatedAt: m.now(), State: Created})
	m.logger.Debug("ephemeral node registered", logging.String("path", p.String()))
}

// Forget drops p after the process deleted the node through another route.
func (m *Manager) Forget(p zpath.Path) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.DeleteFunc(m.entries, func(entry *Registration) bool {
		return entry.Path.Equal(p) && entry.State == Created
	})
}

// Registrations returns a snapshot in creation order.
func (m *Manager) Registrations() []Registration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Registration, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, *entry)
	}
	return out
}

// Pending returns the paths still waiting for cleanup.
func (m *Manager) Pending() []zpath.Path {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []zpath.Path
	for _, entry := range m.entries {
		if entry.State == Created {
			out = append(out, entry.Path)
		}
	}
	return out
}

// CleanupAll deletes every registered node, newest first. Only the first
// call does any work; later calls return the same report. Cancellation of ctx
// is ignored so an interrupted command still cleans up.
func (m *Manager) CleanupAll(ctx context.Context) Report {
	m.once.Do(func() {
		m.report = m.cleanup(context.WithoutCancel(ctx))
	})
	return m.report
}

func (m *Manager) cleanup(ctx context.Context) Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	var report Report
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if entry.State != Created {
			continue
		}
		if err := m.deleter.Delete(ctx, entry.Path, zkclient.AnyVersion); err != nil {
			entry.State = Abandoned
			entry.Err = err
			report.Abandoned = append(report.Abandoned, *entry)
			logging.WarnWithContext(m.logger, "ephemeral node cleanup failed", "ephemeral_cleanup_failed",
				logging.String("path", entry.Path.String()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "the service removes it when the session expires"),
				logging.String(logging.FieldImpact, "node may outlive the command until session expiry"),
			)
			continue
		}
		entry.State = Deleted
		report.Deleted = append(report.Deleted, entry.Path)
		m.logger.Info("ephemeral node deleted", logging.String("path", entry.Path.String()))
	}
	return report
}
