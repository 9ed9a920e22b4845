package filehandler

import (
	"fmt"
	"os"
	"strings"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// CaptureInfo holds the EXIF fields worth surfacing to the naming service as
// extra context. All fields are optional.
type CaptureInfo struct {
	DateTaken   string // formatted, empty when unavailable
	CameraMake  string
	CameraModel string
}

// ExtractCaptureInfo reads EXIF metadata from the image at path. Images
// without metadata (or formats imagemeta cannot parse) yield an error; the
// caller treats that as "no context", never as a processing failure.
func ExtractCaptureInfo(path string) (*CaptureInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	exifData, err := imagemeta.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXIF metadata: %w", err)
	}

	info := &CaptureInfo{
		CameraMake:  strings.TrimSpace(exifData.Make),
		CameraModel: strings.TrimSpace(exifData.Model),
	}

	// Priority: DateTimeOriginal > CreateDate > ModifyDate
	switch {
	case !exifData.DateTimeOriginal().IsZero():
		info.DateTaken = exifData.DateTimeOriginal().Format("January 2, 2006")
	case !exifData.CreateDate().IsZero():
		info.DateTaken = exifData.CreateDate().Format("January 2, 2006")
	case !exifData.ModifyDate().IsZero():
		info.DateTaken = exifData.ModifyDate().Format("January 2, 2006")
	}

	log.Debug().
		Str("path", path).
		Str("date_taken", info.DateTaken).
		Str("camera", info.CameraMake+" "+info.CameraModel).
		Msg("EXIF capture info extracted")

	return info, nil
}

// FormatPromptContext renders the capture info as a short text block for
// inclusion in the naming prompt. Returns "" when nothing useful is present.
func (c *CaptureInfo) FormatPromptContext() string {
	if c == nil {
		return ""
	}

	var sb strings.Builder
	if c.DateTaken != "" {
		fmt.Fprintf(&sb, "- Taken: %s\n", c.DateTaken)
	}
	if c.CameraMake != "" || c.CameraModel != "" {
		fmt.Fprintf(&sb, "- Camera: %s\n", strings.TrimSpace(c.CameraMake+" "+c.CameraModel))
	}
	return strings.TrimRight(sb.String(), "\n")
}
