// Package shutdown coordinates graceful teardown of the editor processes.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
)

// Handler is one named cleanup step.
type Handler struct {
	Name    string
	Cleanup func(ctx context.Context) error
}

// Manager runs registered cleanup handlers when the process is told to stop.
type Manager struct {
	log     *logger.Logger
	timeout time.Duration

	mu       sync.Mutex
	handlers []Handler
	once     sync.Once
	done     chan struct{}
}

// NewManager creates a manager; timeout bounds the whole shutdown sequence.
func NewManager(log *logger.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Manager{
		log:     log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// Register adds a cleanup handler. Handlers run in reverse registration
// order, so dependencies registered first are closed last.
func (m *Manager) Register(name string, cleanup func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, Handler{Name: name, Cleanup: cleanup})
	m.log.Debug("registered shutdown handler", "name", name)
}

// Wait blocks until SIGINT/SIGTERM arrives or ctx is cancelled, then runs
// the shutdown sequence.
func (m *Manager) Wait(ctx context.Context) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		m.log.Info("shutdown signal received", "signal", s.String())
	case <-ctx.Done():
		m.log.Info("shutdown requested by context")
	}

	m.Shutdown()
}

// Shutdown runs all handlers once, newest first, within the configured
// timeout. Safe to call multiple times.
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		defer close(m.done)

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		m.mu.Lock()
		handlers := make([]Handler, len(m.handlers))
		copy(handlers, m.handlers)
		m.mu.Unlock()

		for i := len(handlers) - 1; i >= 0; i-- {
			h := handlers[i]
			m.log.Info("shutting down", "name", h.Name)

			if err := h.Cleanup(ctx); err != nil {
				m.log.Error("shutdown handler failed", "name", h.Name, "error", err.Error())
				continue
			}
			m.log.Debug("shutdown handler finished", "name", h.Name)
		}
	})
}

// Done is closed once the shutdown sequence has finished.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
