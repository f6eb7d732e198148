package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/flowshot/pkg/core"
)

// solidPNG encodes a w x h image filled with c.
func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Directory == "" {
		cfg.Directory = t.TempDir()
	}
	return NewEngine(cfg)
}

func TestCapture_FirstRunWritesReference(t *testing.T) {
	// Scenario A: fresh directory establishes a baseline
	engine := newTestEngine(t, Config{})
	data := solidPNG(t, 4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	result := engine.Capture("first-run", data)

	assert.Equal(t, core.SnapshotNewReference, result.Status)
	assert.Equal(t, filepath.Join(engine.Store().Dir(), "first-run.png"), result.ReferencePath)
	stored, err := os.ReadFile(result.ReferencePath)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestCapture_Idempotence(t *testing.T) {
	// Scenario B: identical content is newReference then matched
	engine := newTestEngine(t, Config{})
	data := solidPNG(t, 4, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	first := engine.Capture("stable", data)
	second := engine.Capture("stable", data)

	assert.Equal(t, core.SnapshotNewReference, first.Status)
	assert.Equal(t, core.SnapshotMatched, second.Status)
}

func TestCapture_Mismatch(t *testing.T) {
	// Scenario C: changed content yields mismatch with fail and diff files
	engine := newTestEngine(t, Config{})
	a := solidPNG(t, 4, 4, color.NRGBA{R: 255, A: 255})
	b := solidPNG(t, 4, 4, color.NRGBA{B: 255, A: 255})

	engine.Capture("mismatch-test", a)
	result := engine.Capture("mismatch-test", b)

	assert.Equal(t, core.SnapshotMismatch, result.Status)
	assert.True(t, filepath.Base(result.ReferencePath) == "mismatch-test.png")
	assert.True(t, filepath.Base(result.ActualPath) == "mismatch-test.fail.png")
	assert.NotNil(t, result.PNGData, "mismatch must carry the rendered bytes")

	failData, err := os.ReadFile(result.ActualPath)
	require.NoError(t, err)
	assert.Equal(t, b, failData)

	diffPath := filepath.Join(engine.Store().Dir(), "mismatch-test.diff.png")
	assert.Equal(t, diffPath, result.DiffPath)
	_, err = os.Stat(diffPath)
	assert.NoError(t, err, "diff file must exist")
}

func TestCapture_MatchRemovesStaleArtifacts(t *testing.T) {
	engine := newTestEngine(t, Config{})
	a := solidPNG(t, 4, 4, color.NRGBA{R: 255, A: 255})
	b := solidPNG(t, 4, 4, color.NRGBA{B: 255, A: 255})

	engine.Capture("flaky", a)
	engine.Capture("flaky", b) // mismatch, writes fail+diff
	result := engine.Capture("flaky", a)

	assert.Equal(t, core.SnapshotMatched, result.Status)
	_, err := os.Stat(engine.Store().FailPath("flaky"))
	assert.True(t, os.IsNotExist(err), "stale fail file not removed")
	_, err = os.Stat(engine.Store().DiffPath("flaky"))
	assert.True(t, os.IsNotExist(err), "stale diff file not removed")
}

func TestCapture_RecordMode(t *testing.T) {
	// Scenario D: record always overwrites and reports newReference
	engine := newTestEngine(t, Config{Record: true})
	a := solidPNG(t, 4, 4, color.NRGBA{R: 255, A: 255})
	b := solidPNG(t, 4, 4, color.NRGBA{G: 255, A: 255})

	first := engine.Capture("r", a)
	second := engine.Capture("r", b)

	assert.Equal(t, core.SnapshotNewReference, first.Status)
	assert.Equal(t, core.SnapshotNewReference, second.Status)

	stored, err := os.ReadFile(engine.Store().ReferencePath("r"))
	require.NoError(t, err)
	assert.Equal(t, b, stored, "final reference must match the last recorded content")
}

func TestCapture_SanitizesName(t *testing.T) {
	// Scenario E: path separators never create directories
	engine := newTestEngine(t, Config{})
	data := solidPNG(t, 2, 2, color.NRGBA{A: 255})

	result := engine.Capture("flow/step", data)

	assert.Equal(t, core.SnapshotNewReference, result.Status)
	_, err := os.Stat(filepath.Join(engine.Store().Dir(), "flow_step.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(engine.Store().Dir(), "flow"))
	assert.True(t, os.IsNotExist(err), "no directory named flow may exist")
}

func TestCapture_Unavailable(t *testing.T) {
	dir := t.TempDir()
	engine := newTestEngine(t, Config{Directory: dir})

	result := engine.Capture("no-pixels", nil)

	assert.Equal(t, core.SnapshotUnavailable, result.Status)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "unavailable capture must not touch the store")
}

func TestCapture_UnreadableReferenceBecomesBaseline(t *testing.T) {
	// A reference that exists but cannot be read is treated as missing
	dir := t.TempDir()
	engine := newTestEngine(t, Config{Directory: dir})
	data := solidPNG(t, 2, 2, color.NRGBA{A: 255})

	refPath := engine.Store().ReferencePath("locked")
	require.NoError(t, os.MkdirAll(refPath, 0o755)) // a directory is unreadable as a file

	result := engine.Capture("locked", data)
	assert.Equal(t, core.SnapshotNewReference, result.Status)
}

func TestCapture_ToleranceZeroIsByteExact(t *testing.T) {
	engine := newTestEngine(t, Config{})
	a := solidPNG(t, 4, 4, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	b := solidPNG(t, 4, 4, color.NRGBA{R: 101, G: 100, B: 100, A: 255})

	engine.Capture("exact", a)
	result := engine.Capture("exact", b)
	assert.Equal(t, core.SnapshotMismatch, result.Status)
}

func TestMatches_ToleranceMonotonicity(t *testing.T) {
	a := solidPNG(t, 4, 4, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	b := solidPNG(t, 4, 4, color.NRGBA{R: 105, G: 100, B: 100, A: 255})

	// Max byte diff is 5; tolerance*255 must be >= 5 to match
	assert.False(t, Matches(a, b, 0))
	assert.False(t, Matches(a, b, 0.01)) // threshold 2.55
	assert.True(t, Matches(a, b, 0.02))  // threshold 5.1
	assert.True(t, Matches(a, b, 0.5))   // anything larger still matches
	assert.True(t, Matches(a, b, 1))
}

func TestMatches_AlphaChannelCounts(t *testing.T) {
	a := solidPNG(t, 2, 2, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	b := solidPNG(t, 2, 2, color.NRGBA{R: 50, G: 50, B: 50, A: 100})

	assert.False(t, Matches(a, b, 0.1), "alpha difference beyond threshold must mismatch")
	assert.True(t, Matches(a, b, 0.7))
}

func TestMatches_DimensionGuard(t *testing.T) {
	c := color.NRGBA{R: 9, G: 9, B: 9, A: 255}
	small := solidPNG(t, 4, 4, c)
	large := solidPNG(t, 8, 8, c)

	// Same content, different dimensions: tolerance never rescues it
	for _, tol := range []float64{0, 0.5, 1} {
		assert.False(t, Matches(small, large, tol), "tolerance %v", tol)
	}
}

func TestMatches_IdenticalBytesFastPath(t *testing.T) {
	data := []byte("not even a png")
	assert.True(t, Matches(data, data, 0), "byte-identical inputs match without decoding")
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(RecordEnvVar, "")
	os.Unsetenv(RecordEnvVar)

	cfg := NewConfig()
	assert.Equal(t, 2.0, cfg.Scale)
	assert.Equal(t, 390, cfg.Size.Width)
	assert.Equal(t, 844, cfg.Size.Height)
	assert.Equal(t, 0.0, cfg.Tolerance)
	assert.False(t, cfg.Record)
	assert.Empty(t, cfg.Directory)
}

func TestNewConfig_RecordEnvToggle(t *testing.T) {
	// Presence check: even an empty value enables record mode
	t.Setenv(RecordEnvVar, "")
	assert.True(t, NewConfig().Record)

	t.Setenv(RecordEnvVar, "1")
	assert.True(t, NewConfig().Record)
}

func TestDeriveDirectory_UsesTestFile(t *testing.T) {
	dir := DeriveDirectory(0)

	// <dir of this file>/snapshots/config_test... derivation walks to the
	// first _test.go frame, which is this file.
	assert.Equal(t, "engine_test", filepath.Base(dir))
	assert.Equal(t, "snapshots", filepath.Base(filepath.Dir(dir)))
}
