// Package form holds the draft of a new menu item while it is being
// edited.
package form

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/erazemk/foodcourt/internal/imaging"
	"github.com/erazemk/foodcourt/internal/model"
)

// Field keys accepted by SetField.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidCategory = errors.New("invalid category")
	ErrImageTooLarge   = errors.New("image too large")
)

// State is the editable draft of one form instance. Every operation
// replaces the snapshot as a whole, so a snapshot handed out earlier is
// never modified afterwards.
type State struct {
	mu         sync.Mutex
	draft      model.ItemDraft
	preview    *Preview
	previewDir string
	previewDim int
}

// Option configures a State.
type Option func(*State)

// WithPreviewDir places preview files in dir instead of the system
// temporary directory.
func WithPreviewDir(dir string) Option {
	return func(s *State) { s.previewDir = dir }
}

// WithPreviewDimension bounds preview thumbnails to dim pixels.
func WithPreviewDimension(dim int) Option {
	return func(s *State) {
		if dim > 0 {
			s.previewDim = dim
		}
	}
}

// New returns a State holding the empty default draft.
func New(opts ...Option) *State {
	s := &State{
		draft:      model.EmptyDraft(),
		previewDim: imaging.PreviewDimension,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current draft.
func (s *State) Snapshot() model.ItemDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetField merges one text field into the draft. Other fields are left
// alone. Unknown keys and categories outside the enumeration are
// rejected without changing the draft.
func (s *State) SetField(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft
	switch key {
	case FieldName:
		next.Name = value
	case FieldDescription:
		next.Description = value
	case FieldPrice:
		next.Price = value
	case FieldCategory:
		if !model.IsCategory(value) {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, value)
		}
		next.Category = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	s.draft = next
	return nil
}

// SetImage replaces the attached image. A preview thumbnail is acquired
// for the new image and the previous preview is released. Passing nil
// clears the image. Data that is not a JPEG or PNG is rejected and the
// draft keeps its current image.
func (s *State) SetImage(img *model.Image) error {
	var preview *Preview
	if img != nil {
		var err error
		preview, err = acquirePreview(s.previewDir, img, s.previewDim)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	old := s.preview
	next := s.draft
	next.Image = img
	s.draft = next
	s.preview = preview
	s.mu.Unlock()

	return old.Release()
}

// Preview returns the handle of the current image preview, or nil.
func (s *State) Preview() *Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Reset restores the empty default draft and releases the preview.
func (s *State) Reset() error {
	s.mu.Lock()
	old := s.preview
	s.draft = model.EmptyDraft()
	s.preview = nil
	s.mu.Unlock()

	return old.Release()
}

// Close releases the preview. The draft itself is left as is.
func (s *State) Close() error {
	s.mu.Lock()
	old := s.preview
	s.preview = nil
	s.mu.Unlock()

	return old.Release()
}

// LoadImage reads an image file from disk and sniffs its type.
func LoadImage(path string) (*model.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if info.Size() > imaging.MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, info.Size(), imaging.MaxUploadSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	mime, err := imaging.Sniff(data)
	if err != nil {
		return nil, err
	}

	return &model.Image{
		Filename: filepath.Base(path),
		MIME:     mime,
		Data:     data,
	}, nil
}
