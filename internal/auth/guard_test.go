package auth

import (
	"errors"
	"testing"

	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/nav"
	"github.com/erazemk/foodcourt/internal/notify"
)

func newTestGuard() (*Guard, *notify.Recorder, *nav.Recorder) {
	sink := &notify.Recorder{}
	n := &nav.Recorder{}
	return NewGuard(sink, n), sink, n
}

func TestGuardRejectsInvalidSessions(t *testing.T) {
	tests := []struct {
		name    string
		session model.Session
	}{
		{"no token", model.Session{Admin: true}},
		{"not admin", model.Session{Token: "tok"}},
		{"empty", model.Session{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, sink, n := newTestGuard()

			err := g.Check(tt.session)
			if !errors.Is(err, ErrAuthorization) {
				t.Fatalf("expected ErrAuthorization, got %v", err)
			}

			msgs := sink.Messages()
			if len(msgs) != 1 || msgs[0].Severity != notify.Error || msgs[0].Text != MsgLoginFirst {
				t.Errorf("expected one login error notification, got %+v", msgs)
			}
			paths := n.Paths()
			if len(paths) != 1 || paths[0] != nav.Root {
				t.Errorf("expected redirect to root, got %v", paths)
			}
		})
	}
}

func TestGuardAllowsAdmin(t *testing.T) {
	g, sink, n := newTestGuard()

	if err := g.Check(model.Session{Token: "tok", Admin: true}); err != nil {
		t.Fatalf("expected access, got %v", err)
	}
	if len(sink.Messages()) != 0 {
		t.Errorf("expected no notifications, got %+v", sink.Messages())
	}
	if len(n.Paths()) != 0 {
		t.Errorf("expected no redirect, got %v", n.Paths())
	}
}

func TestGuardWatchReevaluatesOnlyOnChange(t *testing.T) {
	g, sink, n := newTestGuard()
	admin := model.Session{Token: "tok", Admin: true}

	if err := g.Watch(admin); err != nil {
		t.Fatalf("Watch(admin): %v", err)
	}

	// Same invalid session seen twice only notifies once.
	loggedOut := model.Session{}
	if err := g.Watch(loggedOut); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
	if err := g.Watch(loggedOut); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization on repeat, got %v", err)
	}

	if got := len(sink.Messages()); got != 1 {
		t.Errorf("expected 1 notification, got %d", got)
	}
	if got := len(n.Paths()); got != 1 {
		t.Errorf("expected 1 redirect, got %d", got)
	}

	// Logging back in is a change and passes silently.
	if err := g.Watch(admin); err != nil {
		t.Fatalf("Watch(admin) after logout: %v", err)
	}
	if got := len(sink.Messages()); got != 1 {
		t.Errorf("expected still 1 notification, got %d", got)
	}
}
