// Package tui is the interactive terminal form for adding a menu item.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/foodcourt/internal/auth"
	"github.com/erazemk/foodcourt/internal/form"
	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/notify"
	"github.com/erazemk/foodcourt/internal/submit"
)

// Focus order of the form.
const (
	focusName = iota
	focusDescription
	focusPrice
	focusCategory
	focusImage
	focusSubmit
	focusCount
)

// LabelUploading replaces the submit label while an upload runs.
const LabelUploading = "Uploading…"

// SessionMsg tells the form that the session may have changed.
type SessionMsg struct {
	Session model.Session
}

type submitDoneMsg struct {
	outcome submit.Outcome
}

type pollMsg struct{}

// Deps are the collaborators of the form.
type Deps struct {
	Form     *form.State
	Uploader submit.Uploader
	Session  model.Session

	// LoadSession, if set, is polled every PollInterval and its result
	// fed back as a SessionMsg.
	LoadSession  func() (model.Session, error)
	PollInterval time.Duration
}

// sessionBox holds the session the controller reads at submit time.
type sessionBox struct {
	mu sync.Mutex
	s  model.Session
}

func (b *sessionBox) get() model.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.s
}

func (b *sessionBox) set(s model.Session) {
	b.mu.Lock()
	b.s = s
	b.mu.Unlock()
}

// Model is the Bubble Tea model of the add-item form.
type Model struct {
	form    *form.State
	ctrl    *submit.Controller
	guard   *auth.Guard
	bridge  *bridge
	session *sessionBox

	loadSession  func() (model.Session, error)
	pollInterval time.Duration

	name        textinput.Model
	description textarea.Model
	price       textinput.Model
	imagePath   textinput.Model
	loadedPath  string

	focus      int
	busy       bool
	denied     bool
	toast      *notify.Message
	quitting   bool
	redirected bool
}

// New builds the form and runs the access check for the initial
// session. A denied check queues the redirect that ends the program and
// locks the fields until then.
func New(d Deps) Model {
	b := newBridge()
	box := &sessionBox{s: d.Session}

	m := Model{
		form:         d.Form,
		ctrl:         submit.NewController(d.Form, d.Uploader, b, box.get),
		guard:        auth.NewGuard(b, b),
		bridge:       b,
		session:      box,
		loadSession:  d.LoadSession,
		pollInterval: d.PollInterval,
	}

	m.name = textinput.New()
	m.name.Placeholder = "Name"
	m.name.CharLimit = 120

	m.description = textarea.New()
	m.description.Placeholder = "Description"
	m.description.ShowLineNumbers = false
	m.description.SetWidth(60)
	m.description.SetHeight(4)

	m.price = textinput.New()
	m.price.Placeholder = "Price"
	m.price.CharLimit = 16

	m.imagePath = textinput.New()
	m.imagePath.Placeholder = "Path to a JPEG or PNG"

	m.name.Focus()

	m.denied = m.guard.Check(d.Session) != nil
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.bridge.listen()}
	if m.loadSession != nil && m.pollInterval > 0 {
		cmds = append(cmds, m.poll())
	}
	return tea.Batch(cmds...)
}

func (m Model) poll() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

// readSession wraps the polled session in a SessionMsg. An unreadable
// or expired session counts as logged out.
func readSession(load func() (model.Session, error)) tea.Msg {
	s, err := load()
	if err != nil {
		return SessionMsg{Session: model.Session{}}
	}
	return SessionMsg{Session: s}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case toastMsg:
		t := notify.Message(msg)
		m.toast = &t
		return m, m.bridge.listen()

	case navigateMsg:
		m.quitting = true
		m.redirected = true
		return m, tea.Quit

	case SessionMsg:
		m.session.set(msg.Session)
		m.denied = m.guard.Watch(msg.Session) != nil
		return m, nil

	case pollMsg:
		load := m.loadSession
		return m, tea.Batch(m.poll(), func() tea.Msg { return readSession(load) })

	case submitDoneMsg:
		m.busy = false
		if msg.outcome.OK() {
			m.clearInputs()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if m.denied {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			if m.focus == focusDescription && msg.String() == "down" {
				break
			}
			return m.moveFocus(1)
		case "shift+tab", "up":
			if m.focus == focusDescription && msg.String() == "up" {
				break
			}
			return m.moveFocus(-1)
		case "ctrl+s":
			return m.submit()
		case "enter":
			switch m.focus {
			case focusSubmit:
				return m.submit()
			case focusImage:
				m.syncImage()
				return m, nil
			case focusName, focusPrice, focusCategory:
				return m.moveFocus(1)
			}
		case "left", "right":
			if m.focus == focusCategory {
				m.cycleCategory(msg.String() == "right")
				return m, nil
			}
		}
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		m.form.SetField(form.FieldName, m.name.Value())
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
		m.form.SetField(form.FieldDescription, m.description.Value())
	case focusPrice:
		m.price, cmd = m.price.Update(msg)
		m.form.SetField(form.FieldPrice, m.price.Value())
	case focusImage:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if m.focus == focusImage {
		m.syncImage()
	}

	m.name.Blur()
	m.description.Blur()
	m.price.Blur()
	m.imagePath.Blur()

	m.focus = (m.focus + delta + focusCount) % focusCount

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		cmd = m.name.Focus()
	case focusDescription:
		cmd = m.description.Focus()
	case focusPrice:
		cmd = m.price.Focus()
	case focusImage:
		cmd = m.imagePath.Focus()
	}
	return m, cmd
}

func (m *Model) cycleCategory(forward bool) {
	n := len(model.Categories)
	i := model.CategoryIndex(m.form.Snapshot().Category)
	if forward {
		i = (i + 1) % n
	} else {
		i = (i - 1 + n) % n
	}
	m.form.SetField(form.FieldCategory, model.Categories[i])
}

// syncImage loads the file named in the image field into the form when
// the path changed. An empty path clears the image.
func (m *Model) syncImage() {
	path := strings.TrimSpace(m.imagePath.Value())
	if path == m.loadedPath {
		return
	}
	m.loadedPath = path

	if path == "" {
		m.form.SetImage(nil)
		return
	}

	img, err := form.LoadImage(path)
	if err == nil {
		err = m.form.SetImage(img)
	}
	if err != nil {
		m.form.SetImage(nil)
		m.toast = &notify.Message{Severity: notify.Error, Text: fmt.Sprintf("Cannot use image: %v", err)}
	}
}

// submit starts one upload in the background. While an upload runs the
// trigger does nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy || m.ctrl.Busy() {
		return m, nil
	}
	m.syncImage()

	if err := form.Validate(m.form.Snapshot()); err != nil {
		m.toast = &notify.Message{Severity: notify.Error, Text: inputMessage(err)}
		return m, nil
	}

	m.busy = true
	ctrl := m.ctrl
	return m, func() tea.Msg {
		return submitDoneMsg{outcome: ctrl.Submit(context.Background())}
	}
}

func (m *Model) clearInputs() {
	m.name.Reset()
	m.description.Reset()
	m.price.Reset()
	m.imagePath.Reset()
	m.loadedPath = ""
}

func inputMessage(err error) string {
	var ie *form.InputError
	if !errors.As(err, &ie) {
		return err.Error()
	}
	keys := make([]string, 0, len(ie.Fields))
	for k := range ie.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+ie.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// Quitting reports whether the form has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Redirected reports whether the access check turned the user away.
func (m Model) Redirected() bool {
	return m.redirected
}

// Close releases the preview of the current image.
func (m Model) Close() error {
	return m.form.Close()
}
