package naming

import "os"

// DefaultModel is the default Gemini model for filename generation.
// Flash keeps per-image latency and cost low; naming needs no deep reasoning.
// Can be overridden via the --model flag or GEMINI_MODEL environment variable.
const DefaultModel = "gemini-2.5-flash"

// ResolveModel returns the model to use: the explicit value (flag) if set,
// else the GEMINI_MODEL environment variable, else DefaultModel.
func ResolveModel(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return DefaultModel
}
