// Package filehandler provides image file discovery, decoding, encoding and
// EXIF capture-info extraction.
package filehandler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions maps the stampable image extensions to their MIME types.
var SupportedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// IsSupported reports whether ext (lowercase, with dot) is a stampable image extension.
func IsSupported(ext string) bool {
	_, ok := SupportedExtensions[ext]
	return ok
}

// ScanImages enumerates image files under dirPath. With recursive set the
// whole tree is walked; otherwise only immediate children are considered.
// Extension matching is case-insensitive. Paths are returned sorted for
// deterministic batch runs.
func ScanImages(dirPath string, recursive bool) ([]string, error) {
	log.Info().
		Str("path", dirPath).
		Bool("recursive", recursive).
		Msg("Scanning directory for images")

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", dirPath)
		}
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var paths []string

	if recursive {
		err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Error accessing path, skipping")
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if IsSupported(strings.ToLower(filepath.Ext(d.Name()))) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if IsSupported(strings.ToLower(filepath.Ext(entry.Name()))) {
				paths = append(paths, filepath.Join(dirPath, entry.Name()))
			}
		}
	}

	sort.Strings(paths)

	log.Info().
		Int("total_images", len(paths)).
		Str("directory", dirPath).
		Msg("Directory scan complete")

	return paths, nil
}
