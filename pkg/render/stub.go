package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
)

// Stub is a deterministic in-memory renderer for tests and examples.
// It fills the proposed bounds with a solid color derived from the view's
// string form and the environment's color scheme, so two different views
// (or the same view under light vs dark) produce different pixels while
// identical inputs always produce identical bytes.
type Stub struct{}

// Render implements Renderer.
func (Stub) Render(view any, env Environment, opts Options) ([]byte, error) {
	w := int(float64(opts.Size.Width) * opts.Scale)
	h := int(float64(opts.Size.Height) * opts.Scale)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	hash := fnv.New32a()
	fmt.Fprintf(hash, "%v|%s", view, env.ColorScheme())
	sum := hash.Sum32()
	fill := color.NRGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 255,
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = fill.R
		img.Pix[i+1] = fill.G
		img.Pix[i+2] = fill.B
		img.Pix[i+3] = fill.A
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unavailable is a renderer that always reports "no pixels on this
// platform", for exercising the unavailable snapshot path.
type Unavailable struct{}

// Render implements Renderer.
func (Unavailable) Render(any, Environment, Options) ([]byte, error) {
	return nil, nil
}
