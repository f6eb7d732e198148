// Package snapshot compares rendered images against stored references and
// persists the reference/fail/diff artifacts on disk.
package snapshot

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/devicelab-dev/flowshot/pkg/render"
)

// RecordEnvVar toggles default record mode when present in the
// environment. Presence check only; the value is ignored.
const RecordEnvVar = "FLOWSHOT_RECORD"

// Default rendering parameters.
const (
	DefaultScale  = 2.0
	DefaultWidth  = 390
	DefaultHeight = 844
)

// Config carries the parameters for one capture session.
type Config struct {
	Scale     float64     // Render pixel density multiplier
	Size      render.Size // Logical view bounds for rendering
	Record    bool        // Always overwrite the reference
	Tolerance float64     // Per-byte allowed difference fraction, in [0,1]; 0 is byte-exact
	Directory string      // Explicit store location; empty derives from the calling test file
}

// NewConfig returns the defaults: 2x scale, 390x844 bounds, zero
// tolerance, record mode taken from RecordEnvVar. Callers override
// fields directly; an explicit Record assignment always wins over the
// environment toggle.
func NewConfig() Config {
	_, record := os.LookupEnv(RecordEnvVar)
	return Config{
		Scale:  DefaultScale,
		Size:   render.Size{Width: DefaultWidth, Height: DefaultHeight},
		Record: record,
	}
}

// RenderOptions returns the render parameters of this config.
func (c Config) RenderOptions() render.Options {
	return render.Options{Size: c.Size, Scale: c.Scale}
}

// DeriveDirectory resolves the snapshot directory for a config with no
// explicit override: the directory of the calling test file, plus a
// "snapshots" subdirectory, plus a subdirectory named after the source
// file without extension. skip counts stack frames above this function's
// caller, as in runtime.Caller.
func DeriveDirectory(skip int) string {
	file := callerFile(skip + 1)
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(filepath.Dir(file), "snapshots", base)
}

// callerFile walks the stack from skip upward and returns the first
// _test.go frame, so derivation lands next to the test regardless of how
// many harness frames sit in between. Falls back to the immediate caller
// when no test frame exists (e.g. example binaries).
func callerFile(skip int) string {
	fallback := "flowshot"
	for i := skip; i < skip+32; i++ {
		_, file, _, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if i == skip {
			fallback = file
		}
		if strings.HasSuffix(file, "_test.go") {
			return file
		}
	}
	return fallback
}
