package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/foodcourt/internal/auth"
	"github.com/erazemk/foodcourt/internal/client"
	"github.com/erazemk/foodcourt/internal/form"
	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/notify"
)

type fakeUploader struct {
	reply *model.Reply
	calls int
}

func (f *fakeUploader) AddFood(_ context.Context, _ string, _ client.Payload) (*model.Reply, error) {
	f.calls++
	return f.reply, nil
}

var adminSession = model.Session{Token: "tok", Admin: true}

func newTestModel(t *testing.T, s model.Session, up *fakeUploader) Model {
	t.Helper()
	f := form.New(form.WithPreviewDir(t.TempDir()))
	t.Cleanup(func() { f.Close() })
	return New(Deps{Form: f, Uploader: up, Session: s})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func key(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

// pending returns the events queued on the bridge without blocking.
func pending(m Model) []tea.Msg {
	var out []tea.Msg
	for {
		select {
		case msg := <-m.bridge.events:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{255, 200, 0, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	path := filepath.Join(t.TempDir(), "mango.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fillForm(t *testing.T, m Model, imagePath string) Model {
	t.Helper()
	m = typeText(t, m, "Mango Juice")
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, "Fresh mango")
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, "3.5")
	m, _ = key(t, m, tea.KeyTab)
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, imagePath)
	m, _ = key(t, m, tea.KeyTab)
	return m
}

func TestGuardRedirectsNonAdmin(t *testing.T) {
	m := newTestModel(t, model.Session{Token: "tok"}, &fakeUploader{})

	events := pending(m)
	if len(events) != 2 {
		t.Fatalf("expected toast and redirect, got %v", events)
	}
	toast, ok := events[0].(toastMsg)
	if !ok || toast.Severity != notify.Error || toast.Text != auth.MsgLoginFirst {
		t.Errorf("unexpected toast %+v", events[0])
	}

	m, _ = update(t, m, toast)
	m, cmd := update(t, m, events[1])
	if !m.Quitting() || !m.Redirected() {
		t.Error("expected form to quit after redirect")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit command")
	}
}

func TestSessionChangeRechecksGuard(t *testing.T) {
	m := newTestModel(t, adminSession, &fakeUploader{})
	if events := pending(m); len(events) != 0 {
		t.Fatalf("admin session should pass, got %v", events)
	}

	m, _ = update(t, m, SessionMsg{Session: adminSession})
	if events := pending(m); len(events) != 0 {
		t.Errorf("unchanged session should not notify, got %v", events)
	}

	m, _ = update(t, m, SessionMsg{Session: model.Session{}})
	if events := pending(m); len(events) != 2 {
		t.Errorf("expected redirect after logout, got %v", events)
	}
}

func TestDeniedFormIgnoresInput(t *testing.T) {
	up := &fakeUploader{reply: &model.Reply{Success: true}}
	m := newTestModel(t, model.Session{}, up)

	m = typeText(t, m, "Sneaky")
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, "free food")
	m, cmd := key(t, m, tea.KeyCtrlS)

	if got := m.form.Snapshot(); got != model.EmptyDraft() {
		t.Errorf("expected untouched draft, got %+v", got)
	}
	if cmd != nil || up.calls != 0 {
		t.Error("expected no submission while denied")
	}
	if m.name.Value() != "" {
		t.Errorf("expected empty name input, got %q", m.name.Value())
	}

	m, cmd = key(t, m, tea.KeyEsc)
	if !m.Quitting() || cmd == nil {
		t.Error("expected quit to stay available")
	}
}

func TestLogoutLocksForm(t *testing.T) {
	m := newTestModel(t, adminSession, &fakeUploader{})
	m, _ = update(t, m, SessionMsg{Session: model.Session{}})
	pending(m)

	m = typeText(t, m, "Late")
	if got := m.form.Snapshot().Name; got != "" {
		t.Errorf("expected input ignored after logout, got %q", got)
	}
}

func TestExpiredSessionCountsAsLoggedOut(t *testing.T) {
	msg := readSession(func() (model.Session, error) {
		return model.Session{}, auth.ErrTokenExpired
	})
	sm, ok := msg.(SessionMsg)
	if !ok || sm.Session.Valid() {
		t.Fatalf("expected empty session message, got %#v", msg)
	}

	m := newTestModel(t, adminSession, &fakeUploader{})
	m, _ = update(t, m, sm)
	if events := pending(m); len(events) != 2 {
		t.Errorf("expected redirect after expiry, got %v", events)
	}
	if !m.denied {
		t.Error("expected form locked after expiry")
	}
}

func TestTypingUpdatesDraft(t *testing.T) {
	m := newTestModel(t, adminSession, &fakeUploader{})
	m = typeText(t, m, "Laksa")
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, "Spicy noodle soup")
	m, _ = key(t, m, tea.KeyTab)
	m = typeText(t, m, "5")

	d := m.form.Snapshot()
	if d.Name != "Laksa" || d.Description != "Spicy noodle soup" || d.Price != "5" {
		t.Errorf("unexpected draft %+v", d)
	}
}

func TestCategoryCycles(t *testing.T) {
	m := newTestModel(t, adminSession, &fakeUploader{})
	for i := 0; i < focusCategory; i++ {
		m, _ = key(t, m, tea.KeyTab)
	}

	m, _ = key(t, m, tea.KeyRight)
	if got := m.form.Snapshot().Category; got != model.Categories[1] {
		t.Errorf("expected %q, got %q", model.Categories[1], got)
	}

	m, _ = key(t, m, tea.KeyLeft)
	m, _ = key(t, m, tea.KeyLeft)
	if got := m.form.Snapshot().Category; got != model.Categories[len(model.Categories)-1] {
		t.Errorf("expected wrap to last category, got %q", got)
	}
}

func TestSubmitFlow(t *testing.T) {
	up := &fakeUploader{reply: &model.Reply{Success: true, Message: "Food Added"}}
	m := newTestModel(t, adminSession, up)
	m = fillForm(t, m, writePNG(t))

	if m.form.Snapshot().Image == nil {
		t.Fatal("expected image loaded when leaving the image field")
	}

	m, cmd := key(t, m, tea.KeyCtrlS)
	if cmd == nil || !m.busy {
		t.Fatal("expected submit to start")
	}
	if !strings.Contains(m.View(), LabelUploading) {
		t.Error("expected uploading label while busy")
	}

	m, again := key(t, m, tea.KeyCtrlS)
	if again != nil {
		t.Error("second trigger while busy should be ignored")
	}

	m, _ = update(t, m, cmd())
	if up.calls != 1 {
		t.Errorf("expected exactly one upload, got %d", up.calls)
	}
	if m.busy {
		t.Error("expected busy cleared")
	}
	if got := m.form.Snapshot(); got != model.EmptyDraft() {
		t.Errorf("expected form reset, got %+v", got)
	}
	if m.name.Value() != "" || m.imagePath.Value() != "" {
		t.Error("expected inputs cleared")
	}

	events := pending(m)
	if len(events) != 1 {
		t.Fatalf("expected one notification, got %v", events)
	}
	m, _ = update(t, m, events[0])
	if m.toast == nil || m.toast.Severity != notify.Success {
		t.Errorf("expected success toast, got %+v", m.toast)
	}
}

func TestSubmitRejectsEmptyFields(t *testing.T) {
	up := &fakeUploader{reply: &model.Reply{Success: true}}
	m := newTestModel(t, adminSession, up)

	m, cmd := key(t, m, tea.KeyCtrlS)
	if cmd != nil || m.busy {
		t.Error("expected no submission for empty form")
	}
	if m.toast == nil || !strings.Contains(m.toast.Text, "name") {
		t.Errorf("expected input error toast, got %+v", m.toast)
	}
	if up.calls != 0 {
		t.Error("no upload expected")
	}
}

func TestBadImagePathShowsError(t *testing.T) {
	m := newTestModel(t, adminSession, &fakeUploader{})
	m = fillForm(t, m, filepath.Join(t.TempDir(), "missing.png"))

	if m.form.Snapshot().Image != nil {
		t.Error("expected no image")
	}
	if m.toast == nil || m.toast.Severity != notify.Error {
		t.Errorf("expected error toast, got %+v", m.toast)
	}
}
