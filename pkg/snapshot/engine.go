package snapshot

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/devicelab-dev/flowshot/pkg/core"
	"github.com/devicelab-dev/flowshot/pkg/logger"
)

// Engine decides match/mismatch between a freshly rendered image and the
// stored reference, and persists artifacts through its Store. An engine
// holds no cross-call state beyond the files on disk.
type Engine struct {
	cfg   Config
	store *Store
}

// NewEngine creates an engine for the given config. An empty
// cfg.Directory derives the store location from the calling test file.
func NewEngine(cfg Config) *Engine {
	dir := cfg.Directory
	if dir == "" {
		dir = DeriveDirectory(1)
		cfg.Directory = dir
	}
	return &Engine{cfg: cfg, store: NewStore(dir)}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Store returns the engine's artifact store.
func (e *Engine) Store() *Store {
	return e.store
}

// Capture runs the full compare-and-persist state machine for one render.
//
// Nil data means rendering was unavailable upstream: no files are
// touched. Otherwise the reference is written (record mode or first run),
// or compared under the configured tolerance; a mismatch writes the fail
// file and a best-effort diff. Filesystem failures are logged, never
// propagated.
func (e *Engine) Capture(name string, data []byte) core.SnapshotResult {
	if len(data) == 0 {
		return core.SnapshotResult{Status: core.SnapshotUnavailable}
	}

	name = SanitizeName(name)
	refPath := e.store.ReferencePath(name)
	failPath := e.store.FailPath(name)
	diffPath := e.store.DiffPath(name)

	if err := e.store.EnsureDir(); err != nil {
		logger.Logger().Warn().Err(err).Str("dir", e.store.Dir()).Msg("failed to create snapshot directory")
	}

	if e.cfg.Record {
		e.writeReference(refPath, data)
		e.store.Remove(failPath, diffPath)
		return core.SnapshotResult{
			Status:        core.SnapshotNewReference,
			ReferencePath: refPath,
			PNGData:       data,
		}
	}

	ref, err := e.store.Read(refPath)
	if err != nil {
		// Missing and unreadable references both establish a new
		// baseline; an unreadable one is at least made visible.
		if !os.IsNotExist(err) {
			logger.Logger().Warn().Err(err).Str("path", refPath).Msg("reference unreadable, overwriting")
		}
		e.writeReference(refPath, data)
		return core.SnapshotResult{
			Status:        core.SnapshotNewReference,
			ReferencePath: refPath,
			PNGData:       data,
		}
	}

	if Matches(ref, data, e.cfg.Tolerance) {
		e.store.Remove(failPath, diffPath)
		return core.SnapshotResult{
			Status:        core.SnapshotMatched,
			ReferencePath: refPath,
			PNGData:       data,
		}
	}

	if err := e.store.Write(failPath, data); err != nil {
		logger.Logger().Warn().Err(err).Str("path", failPath).Msg("failed to write failing render")
	}
	result := core.SnapshotResult{
		Status:        core.SnapshotMismatch,
		ReferencePath: refPath,
		ActualPath:    failPath,
		PNGData:       data,
	}
	if diff, err := Diff(ref, data); err != nil {
		logger.Logger().Debug().Err(err).Str("name", name).Msg("diff generation failed")
	} else if err := e.store.Write(diffPath, diff); err != nil {
		logger.Logger().Warn().Err(err).Str("path", diffPath).Msg("failed to write diff")
	} else {
		result.DiffPath = diffPath
	}
	return result
}

func (e *Engine) writeReference(path string, data []byte) {
	if err := e.store.Write(path, data); err != nil {
		logger.Logger().Warn().Err(err).Str("path", path).Msg("failed to write reference")
	}
}

// Matches reports whether two encoded images agree under the given
// tolerance, the fraction of the maximum channel value (255) any single
// byte may differ by. Zero tolerance is byte-exact; differing dimensions
// are never rescued by tolerance.
func Matches(ref, actual []byte, tolerance float64) bool {
	if bytes.Equal(ref, actual) {
		return true
	}
	if tolerance <= 0 {
		return false
	}

	refImg, err := decodeNRGBA(ref)
	if err != nil {
		return false
	}
	actualImg, err := decodeNRGBA(actual)
	if err != nil {
		return false
	}
	if refImg.Bounds().Size() != actualImg.Bounds().Size() {
		return false
	}

	threshold := tolerance * 255
	for i := range refImg.Pix {
		diff := int(refImg.Pix[i]) - int(actualImg.Pix[i])
		if diff < 0 {
			diff = -diff
		}
		if float64(diff) > threshold {
			return false
		}
	}
	return true
}

// decodeNRGBA decodes PNG bytes into a straight-alpha RGBA buffer so
// comparison sees every channel of every pixel as one byte each.
func decodeNRGBA(data []byte) (*image.NRGBA, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if img, ok := src.(*image.NRGBA); ok {
		return img, nil
	}
	bounds := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img, nil
}
