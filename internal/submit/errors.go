package submit

import "errors"

var (
	// ErrBusy is returned when a submit is triggered while another one
	// is still in flight. The trigger is dropped, not queued.
	ErrBusy = errors.New("submission already in progress")

	// ErrValidation covers drafts rejected before any request is made.
	ErrValidation = errors.New("validation failed")

	// ErrTransport covers network failures and non-2xx answers.
	ErrTransport = errors.New("upload failed")

	// ErrApplication covers answers whose success flag is false.
	ErrApplication = errors.New("backend rejected item")
)

// User-facing messages.
const (
	MsgImageRequired   = "Please upload an image"
	MsgPriceNotNumeric = "Price must be a number"
	MsgUploadFailed    = "Upload failed"
	MsgAdded           = "Food added"
)

// Kind classifies how a submit attempt ended.
type Kind int

const (
	Skipped Kind = iota
	Invalid
	TransportFailure
	ApplicationFailure
	Succeeded
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case TransportFailure:
		return "transport_error"
	case ApplicationFailure:
		return "application_error"
	case Succeeded:
		return "success"
	default:
		return "skipped"
	}
}

// Outcome describes one submit attempt. Message is what the user was
// shown; it is empty for skipped attempts.
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
}

// OK reports whether the item was accepted by the backend.
func (o Outcome) OK() bool { return o.Kind == Succeeded }
