package render

// Environment is the mutable value bag a flow configuration patches
// immediately before each render. Keys are framework-defined; the harness
// only passes the bag through.
type Environment map[string]any

// Well-known environment keys.
const (
	KeyColorScheme = "colorScheme" // "light" or "dark"
	KeyLocale      = "locale"      // BCP 47 tag, e.g. "en-US"
	KeyTextScale   = "textScale"   // float64 dynamic-type multiplier
)

// Color scheme values.
const (
	ColorSchemeLight = "light"
	ColorSchemeDark  = "dark"
)

// ColorScheme returns the color scheme, defaulting to light when unset.
func (e Environment) ColorScheme() string {
	if v, ok := e[KeyColorScheme].(string); ok && v != "" {
		return v
	}
	return ColorSchemeLight
}

// Clone returns a shallow copy of the environment.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
