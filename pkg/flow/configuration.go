package flow

import (
	"github.com/devicelab-dev/flowshot/pkg/render"
)

// Configuration varies the rendering context of a run. In matrix runs a
// non-empty label is folded into every resolved step name.
type Configuration struct {
	Label string                       // Empty means no matrix suffix
	Patch func(env render.Environment) // Applied once per step, immediately before rendering
}

// Configure builds a labeled configuration.
func Configure(label string, patch func(env render.Environment)) Configuration {
	return Configuration{Label: label, Patch: patch}
}

// ColorScheme returns a configuration that sets the environment's color
// scheme, labeled with the scheme name. The common matrix axis.
func ColorScheme(scheme string) Configuration {
	return Configuration{
		Label: scheme,
		Patch: func(env render.Environment) {
			env[render.KeyColorScheme] = scheme
		},
	}
}
