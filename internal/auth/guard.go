package auth

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/nav"
	"github.com/erazemk/foodcourt/internal/notify"
)

// ErrAuthorization is returned when a protected view is entered without
// an admin session.
var ErrAuthorization = errors.New("admin session required")

// MsgLoginFirst is shown when the guard turns the user away.
const MsgLoginFirst = "Please login first"

// Guard keeps non-admins out of the item form. It is evaluated when the
// form is entered and again whenever the session changes; it is not
// consulted at submit time.
type Guard struct {
	sink notify.Sink
	nav  nav.Navigator

	mu   sync.Mutex
	last *model.Session
}

// NewGuard returns a guard reporting through sink and redirecting via n.
func NewGuard(sink notify.Sink, n nav.Navigator) *Guard {
	return &Guard{sink: sink, nav: n}
}

// Check evaluates s unconditionally. A session without a token or
// without the admin flag produces one error notification and a redirect
// to the root view.
func (g *Guard) Check(s model.Session) error {
	g.mu.Lock()
	g.last = &s
	g.mu.Unlock()
	return g.evaluate(s)
}

// Watch evaluates s only if it differs from the last session the guard
// saw. The first call always evaluates.
func (g *Guard) Watch(s model.Session) error {
	g.mu.Lock()
	if g.last != nil && *g.last == s {
		g.mu.Unlock()
		if !s.Valid() {
			return ErrAuthorization
		}
		return nil
	}
	g.last = &s
	g.mu.Unlock()
	return g.evaluate(s)
}

func (g *Guard) evaluate(s model.Session) error {
	if s.Valid() {
		return nil
	}
	slog.Warn("access denied to item form", "has_token", s.Token != "", "admin", s.Admin)
	g.sink.Notify(notify.Error, MsgLoginFirst)
	g.nav.Navigate(nav.Root)
	return ErrAuthorization
}
