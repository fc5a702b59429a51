// Package nav moves the user between views.
package nav

import "sync"

// Root is the path of the landing view.
const Root = "/"

// Navigator redirects the user to another view.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Recorder remembers every path it was asked to navigate to.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// Navigate records path.
func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Paths returns a copy of the recorded paths.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}
