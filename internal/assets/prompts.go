// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at
// compile time.
package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// namingPromptTemplate instructs the model to produce a filename-safe
// description of one image.
//
//go:embed prompts/naming.txt
var namingPromptTemplate string

var namingTmpl = template.Must(template.New("naming").Parse(namingPromptTemplate))

// NamingPromptData holds the dynamic values for the naming prompt.
type NamingPromptData struct {
	// MaxLength is the character budget for the generated filename stem.
	MaxLength int

	// CaptureContext is an optional block of EXIF-derived context
	// (capture date, camera). Empty when no metadata is available.
	CaptureContext string
}

// BuildNamingPrompt renders the naming prompt template.
func BuildNamingPrompt(data NamingPromptData) (string, error) {
	var buf bytes.Buffer
	if err := namingTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render naming prompt: %w", err)
	}
	return buf.String(), nil
}
