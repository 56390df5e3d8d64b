package app

import (
	"context"
	"errors"
	"testing"

	"github.com/flowlytix/subscription-service/internal/logging"
)

type fakeResource struct {
	name     string
	openErr  error
	closeErr error
	pingErr  error
	events   *[]string
}

func (f *fakeResource) Name() string { return f.name }

func (f *fakeResource) Open(context.Context) error {
	*f.events = append(*f.events, "open:"+f.name)
	return f.openErr
}

func (f *fakeResource) Close(context.Context) error {
	*f.events = append(*f.events, "close:"+f.name)
	return f.closeErr
}

func (f *fakeResource) Ping(context.Context) error { return f.pingErr }

func equalEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, got)
		}
	}
}

func TestLifecycle_StartAndStopOrder(t *testing.T) {
	var events []string
	l := NewLifecycle(logging.Discard())
	l.Require(&fakeResource{name: "database", events: &events})
	l.Attach(&fakeResource{name: "redis", events: &events})

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	l.Stop(context.Background())

	equalEvents(t, events, []string{"open:database", "open:redis", "close:redis", "close:database"})
}

func TestLifecycle_RequiredFailureAbortsAndRollsBack(t *testing.T) {
	var events []string
	refused := errors.New("connection refused")
	l := NewLifecycle(logging.Discard())
	l.Attach(&fakeResource{name: "redis", events: &events})
	l.Require(&fakeResource{name: "database", openErr: refused, events: &events})
	l.Require(&fakeResource{name: "never", events: &events})

	err := l.Start(context.Background())
	if !errors.Is(err, refused) {
		t.Fatalf("expected wrapped startup error, got %v", err)
	}
	equalEvents(t, events, []string{"open:redis", "open:database", "close:redis"})

	// A later Stop must not close anything twice.
	l.Stop(context.Background())
	equalEvents(t, events, []string{"open:redis", "open:database", "close:redis"})
}

func TestLifecycle_OptionalFailureIsSkipped(t *testing.T) {
	var events []string
	l := NewLifecycle(logging.Discard())
	l.Require(&fakeResource{name: "database", events: &events})
	l.Attach(&fakeResource{name: "redis", openErr: errors.New("no route"), events: &events})

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("optional failure must not abort startup, got %v", err)
	}
	checks, healthy := l.Check(context.Background())
	if !healthy || len(checks) != 1 || checks["database"] != "healthy" {
		t.Fatalf("expected only database to be checked, got %v", checks)
	}

	l.Stop(context.Background())
	equalEvents(t, events, []string{"open:database", "open:redis", "close:database"})
}

func TestLifecycle_ShutdownFailuresAreNotFatal(t *testing.T) {
	var events []string
	l := NewLifecycle(logging.Discard())
	l.Require(&fakeResource{name: "database", events: &events})
	l.Require(&fakeResource{name: "redis", closeErr: errors.New("already closed"), events: &events})

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	l.Stop(context.Background())

	equalEvents(t, events, []string{"open:database", "open:redis", "close:redis", "close:database"})
}

func TestLifecycle_CheckReportsPingFailures(t *testing.T) {
	var events []string
	l := NewLifecycle(logging.Discard())
	l.Require(&fakeResource{name: "database", pingErr: errors.New("timeout"), events: &events})

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	checks, healthy := l.Check(context.Background())
	if healthy {
		t.Fatal("expected unhealthy result")
	}
	if checks["database"] != "timeout" {
		t.Fatalf("expected ping error in checks, got %v", checks)
	}
}
