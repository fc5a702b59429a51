package form

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"sync"

	"github.com/erazemk/foodcourt/internal/imaging"
	"github.com/erazemk/foodcourt/internal/model"
)

// Preview is a temporary thumbnail file standing in for the attached
// image on screen. It must be released once the image is replaced or
// the form goes away.
type Preview struct {
	Path string
	Size image.Point

	once sync.Once
	err  error
}

func acquirePreview(dir string, img *model.Image, maxDim int) (*Preview, error) {
	thumb, size, err := imaging.Thumbnail(img.Data, maxDim)
	if err != nil {
		return nil, fmt.Errorf("building preview: %w", err)
	}

	f, err := os.CreateTemp(dir, "foodcourt-preview-*.png")
	if err != nil {
		return nil, fmt.Errorf("creating preview file: %w", err)
	}
	if _, err := f.Write(thumb); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("closing preview file: %w", err)
	}

	return &Preview{Path: f.Name(), Size: size}, nil
}

// Release deletes the preview file. It is safe to call more than once
// and on a nil Preview.
func (p *Preview) Release() error {
	if p == nil {
		return nil
	}
	p.once.Do(func() {
		err := os.Remove(p.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			p.err = fmt.Errorf("removing preview: %w", err)
		}
	})
	return p.err
}
