// Package render defines the contract between the flow tester and the
// view-rendering backend that turns a declared UI tree into pixels.
package render

// Size is a proposed view size in logical units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Options carries the rendering parameters for one capture.
type Options struct {
	Size  Size    // Logical view bounds
	Scale float64 // Pixel density multiplier
}

// Renderer produces encoded PNG bytes for a declarative view description.
//
// Returning (nil, nil) means rendering is unavailable on this
// platform/configuration; the harness maps that, and any error, to an
// unavailable snapshot status rather than aborting the run.
//
// Render is always invoked from the single orchestration thread; an
// implementation must not assume it is safe to call concurrently.
type Renderer interface {
	Render(view any, env Environment, opts Options) ([]byte, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(view any, env Environment, opts Options) ([]byte, error)

// Render implements Renderer.
func (f RendererFunc) Render(view any, env Environment, opts Options) ([]byte, error) {
	return f(view, env, opts)
}
