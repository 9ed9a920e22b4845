package auth

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// GetAPIKey retrieves the Gemini API key from available sources.
// Priority order:
//  1. The explicit value (e.g. from the --api-key flag), if non-empty
//  2. GEMINI_API_KEY environment variable
func GetAPIKey(explicit string) (string, error) {
	if explicit != "" {
		log.Debug().Msg("Using API key from flag")
		return explicit, nil
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}

	return "", fmt.Errorf("API key not found. Pass --api-key or set GEMINI_API_KEY")
}
