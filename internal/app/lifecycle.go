/**
 * @description
 * This file implements the lifecycle manager that opens the backing resources at
 * startup, closes them in reverse order at shutdown, and pings them for readiness.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Resource is an external connection opened before serving and closed after.
type Resource interface {
	Name() string
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
}

type registration struct {
	resource Resource
	required bool
}

// Lifecycle runs the startup and shutdown hooks around the serving window.
// Resources open in registration order and close in reverse.
type Lifecycle struct {
	logger *slog.Logger

	mu            sync.Mutex
	registrations []registration
	opened        []Resource
}

// NewLifecycle creates an empty lifecycle.
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Require registers a resource whose startup failure aborts Start.
func (l *Lifecycle) Require(r Resource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registrations = append(l.registrations, registration{resource: r, required: true})
}

// Attach registers a resource whose startup failure is logged and skipped.
func (l *Lifecycle) Attach(r Resource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registrations = append(l.registrations, registration{resource: r})
}

// Start opens every registered resource. If a required resource fails, the
// resources opened so far are closed again and the error is returned.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, reg := range l.registrations {
		name := reg.resource.Name()
		if err := reg.resource.Open(ctx); err != nil {
			if !reg.required {
				l.logger.WarnContext(ctx, "optional resource unavailable, continuing without it", "resource", name, "error", err)
				continue
			}
			l.logger.ErrorContext(ctx, "application startup failed", "resource", name, "error", err)
			l.closeOpened(ctx)
			return fmt.Errorf("start %s: %w", name, err)
		}
		l.opened = append(l.opened, reg.resource)
		l.logger.InfoContext(ctx, "resource initialized", "resource", name)
	}

	l.logger.InfoContext(ctx, "application startup completed", "resources", len(l.opened))
	return nil
}

// Stop closes every opened resource. Failures are logged and never abort the
// remaining teardown.
func (l *Lifecycle) Stop(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.InfoContext(ctx, "shutting down application")
	l.closeOpened(ctx)
	l.logger.InfoContext(ctx, "application shutdown completed")
}

func (l *Lifecycle) closeOpened(ctx context.Context) {
	for i := len(l.opened) - 1; i >= 0; i-- {
		r := l.opened[i]
		if err := r.Close(ctx); err != nil {
			l.logger.ErrorContext(ctx, "error during shutdown", "resource", r.Name(), "error", err)
			continue
		}
		l.logger.InfoContext(ctx, "resource closed", "resource", r.Name())
	}
	l.opened = nil
}

// Check pings every opened resource and returns "healthy" or the ping error
// per resource name.
func (l *Lifecycle) Check(ctx context.Context) (map[string]string, bool) {
	l.mu.Lock()
	opened := append([]Resource(nil), l.opened...)
	l.mu.Unlock()

	checks := make(map[string]string, len(opened))
	healthy := true
	for _, r := range opened {
		if err := r.Ping(ctx); err != nil {
			checks[r.Name()] = err.Error()
			healthy = false
			continue
		}
		checks[r.Name()] = "healthy"
	}
	return checks, healthy
}
