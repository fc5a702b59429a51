// Package notify delivers short user-facing messages.
package notify

import (
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Sink displays a message to the user. Calls are fire-and-forget.
type Sink interface {
	Notify(severity Severity, message string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Severity, string)

// Notify calls f.
func (f SinkFunc) Notify(severity Severity, message string) {
	f(severity, message)
}

// LogSink writes notifications to a slog logger. Errors are logged at
// ERROR level so they end up on stderr.
type LogSink struct {
	Logger *slog.Logger
}

// Notify logs the message.
func (s LogSink) Notify(severity Severity, message string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if severity == Error {
		logger.Error(message, "severity", severity.String())
		return
	}
	logger.Info(message, "severity", severity.String())
}

// Message is a recorded notification.
type Message struct {
	Severity Severity
	Text     string
}

// Recorder keeps every notification it receives. It is safe for
// concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify records the message.
func (r *Recorder) Notify(severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Severity: severity, Text: message})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message and whether there was one.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
