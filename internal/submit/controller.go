// Package submit drives a draft from the form to the backend.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/erazemk/foodcourt/internal/client"
	"github.com/erazemk/foodcourt/internal/form"
	"github.com/erazemk/foodcourt/internal/metrics"
	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/notify"
)

// State is a controller state.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "idle"
	}
}

// Uploader sends a payload to the backend.
type Uploader interface {
	AddFood(ctx context.Context, token string, p client.Payload) (*model.Reply, error)
}

var errEmptyReply = errors.New("empty reply")

// SessionFunc returns the session to attach to the next upload.
type SessionFunc func() model.Session

// Controller validates the draft held by a form, uploads it and reports
// the result. At most one upload is in flight at a time.
type Controller struct {
	form    *form.State
	up      Uploader
	sink    notify.Sink
	session SessionFunc
	logger  *slog.Logger

	mu    sync.Mutex
	state State
}

// NewController wires a controller to its collaborators.
func NewController(f *form.State, up Uploader, sink notify.Sink, session SessionFunc) *Controller {
	return &Controller{
		form:    f,
		up:      up,
		sink:    sink,
		session: session,
		logger:  slog.Default().With("component", "submit"),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a submission is in progress; the submit control
// should be disabled while it is.
func (c *Controller) Busy() bool {
	return c.State() != Idle
}

func (c *Controller) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	c.logger.Debug("state change", "from", from.String(), "to", to.String())
}

// Submit runs one submission attempt and blocks until the upload
// resolves. A trigger arriving while another attempt is running is
// ignored and reported as Skipped. Every other outcome is reported to
// the user through exactly one notification.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		return Outcome{Kind: Skipped, Err: ErrBusy}
	}
	c.state = Validating
	c.mu.Unlock()

	draft := c.form.Snapshot()
	payload, out, ok := c.validate(draft)
	if !ok {
		return c.finish(Idle, out)
	}

	c.transition(Submitting)
	c.logger.Info("uploading item", "name", draft.Name, "category", draft.Category, "image", draft.Image.Filename)

	reply, err := c.up.AddFood(ctx, c.session().Token, payload)
	if err == nil && reply == nil {
		err = errEmptyReply
	}
	switch {
	case err != nil:
		c.logger.Error("upload failed", "error", err)
		return c.finish(Failure, Outcome{
			Kind:    TransportFailure,
			Message: MsgUploadFailed,
			Err:     fmt.Errorf("%w: %w", ErrTransport, err),
		})

	case !reply.Success:
		msg := reply.Message
		if msg == "" {
			msg = MsgUploadFailed
		}
		c.logger.Warn("backend rejected item", "message", reply.Message)
		return c.finish(Failure, Outcome{
			Kind:    ApplicationFailure,
			Message: msg,
			Err:     fmt.Errorf("%w: %s", ErrApplication, msg),
		})
	}

	if err := c.form.Reset(); err != nil {
		c.logger.Warn("releasing preview after reset", "error", err)
	}
	msg := reply.Message
	if msg == "" {
		msg = MsgAdded
	}
	c.logger.Info("item added", "name", draft.Name)
	return c.finish(Success, Outcome{Kind: Succeeded, Message: msg})
}

// validate checks the rules owned by the controller: an image must be
// attached and the price must read as a number. The remaining text
// fields are enforced by the input layer.
func (c *Controller) validate(d model.ItemDraft) (client.Payload, Outcome, bool) {
	if d.Image == nil {
		return client.Payload{}, Outcome{
			Kind:    Invalid,
			Message: MsgImageRequired,
			Err:     fmt.Errorf("%w: image required", ErrValidation),
		}, false
	}

	price, err := model.ParsePrice(d.Price)
	if err != nil {
		return client.Payload{}, Outcome{
			Kind:    Invalid,
			Message: MsgPriceNotNumeric,
			Err:     fmt.Errorf("%w: %w", ErrValidation, err),
		}, false
	}

	return client.Payload{
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		Image:       d.Image,
	}, Outcome{}, true
}

// finish reports the outcome, passes through the terminal state and
// returns to Idle.
func (c *Controller) finish(terminal State, out Outcome) Outcome {
	if terminal != Idle {
		c.transition(terminal)
	}

	severity := notify.Error
	if out.Kind == Succeeded {
		severity = notify.Success
	}
	c.sink.Notify(severity, out.Message)
	metrics.IncSubmission(out.Kind.String())

	c.transition(Idle)
	return out
}
