package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/foodcourt/internal/notify"
)

type toastMsg notify.Message

type navigateMsg string

// bridge turns notifications and navigation requests coming from the
// guard and the controller into messages for the program loop.
type bridge struct {
	events chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{events: make(chan tea.Msg, 16)}
}

func (b *bridge) Notify(severity notify.Severity, message string) {
	b.events <- toastMsg{Severity: severity, Text: message}
}

func (b *bridge) Navigate(path string) {
	b.events <- navigateMsg(path)
}

// listen waits for the next event. It is re-armed after every event.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg { return <-b.events }
}
