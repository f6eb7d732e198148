package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Diff colors for the generated comparison image.
var (
	diffChanged = color.NRGBA{R: 255, A: 255} // Opaque red where any channel differs
)

// Diff renders a visual comparison of two encoded images: differing
// pixels become opaque red, matching pixels a half-transparent grayscale
// backdrop. The canvas is the union of both dimensions, each image drawn
// at its native top-left origin, so size mismatches still diff usefully.
func Diff(ref, actual []byte) ([]byte, error) {
	refImg, err := decodeNRGBA(ref)
	if err != nil {
		return nil, err
	}
	actualImg, err := decodeNRGBA(actual)
	if err != nil {
		return nil, err
	}

	width := refImg.Bounds().Dx()
	if w := actualImg.Bounds().Dx(); w > width {
		width = w
	}
	height := refImg.Bounds().Dy()
	if h := actualImg.Bounds().Dy(); h > height {
		height = h
	}

	canvas := image.Rect(0, 0, width, height)
	a := image.NewNRGBA(canvas)
	b := image.NewNRGBA(canvas)
	draw.Draw(a, refImg.Bounds(), refImg, image.Point{}, draw.Src)
	draw.Draw(b, actualImg.Bounds(), actualImg, image.Point{}, draw.Src)

	out := image.NewNRGBA(canvas)
	for i := 0; i < len(out.Pix); i += 4 {
		if a.Pix[i] != b.Pix[i] || a.Pix[i+1] != b.Pix[i+1] ||
			a.Pix[i+2] != b.Pix[i+2] || a.Pix[i+3] != b.Pix[i+3] {
			out.Pix[i] = diffChanged.R
			out.Pix[i+1] = diffChanged.G
			out.Pix[i+2] = diffChanged.B
			out.Pix[i+3] = diffChanged.A
			continue
		}
		gray := uint8((int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])) / 3)
		out.Pix[i] = gray
		out.Pix[i+1] = gray
		out.Pix[i+2] = gray
		out.Pix[i+3] = 127
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
