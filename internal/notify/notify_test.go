package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("expected no messages")
	}

	r.Notify(Success, "Food Added")
	r.Notify(Error, "Upload failed")

	msgs := r.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Severity != Success || msgs[0].Text != "Food Added" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}

	last, _ := r.Last()
	if last.Severity != Error {
		t.Errorf("expected last severity error, got %s", last.Severity)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogSink{Logger: logger}.Notify(Error, "Please upload an image")

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected ERROR level, got %q", out)
	}
	if !strings.Contains(out, "Please upload an image") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestSinkFunc(t *testing.T) {
	var got string
	var s Sink = SinkFunc(func(_ Severity, msg string) { got = msg })
	s.Notify(Info, "hello")
	if got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
}
