package naming

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/logostamp/internal/assets"
	"github.com/fpang/logostamp/internal/filehandler"
)

// generateFunc performs one naming-service call: prompt plus an inline JPEG,
// free-text description back. Swappable in tests.
type generateFunc func(ctx context.Context, model, prompt string, imageJPEG []byte) (string, error)

// Namer produces descriptive filename stems for images by sending a
// downscaled copy to Gemini. All outbound calls go through the shared rate
// limiter and the retry policy.
//
// Name never fails hard: any unrecoverable error yields "" and the caller
// falls back to the original filename.
type Namer struct {
	model     string
	maxLength int

	limiter  *Limiter
	retrier  *Retrier
	generate generateFunc
}

// NewNamer builds a Namer backed by the given Gemini client.
func NewNamer(client *genai.Client, model string, maxLength int) *Namer {
	return &Namer{
		model:     model,
		maxLength: maxLength,
		limiter:   NewLimiter(DefaultMinInterval),
		retrier:   NewRetrier(DefaultMaxAttempts),
		generate:  geminiGenerate(client),
	}
}

// NewGeminiClient creates a Gemini API client from an API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// Name generates a filename stem for img. sourcePath supplies the fallback
// stem and optional EXIF context for the prompt. Returns "" on unrecoverable
// failure; that is a soft failure and the caller keeps the original name.
func (n *Namer) Name(ctx context.Context, img image.Image, sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	imageJPEG, err := filehandler.EncodeNamingJPEG(img)
	if err != nil {
		log.Warn().Err(err).Str("file", base).Msg("Failed to prepare image for naming")
		return ""
	}

	// EXIF context is strictly optional; most failures just mean the file
	// carries no metadata.
	var captureContext string
	if info, err := filehandler.ExtractCaptureInfo(sourcePath); err == nil {
		captureContext = info.FormatPromptContext()
	}

	prompt, err := assets.BuildNamingPrompt(assets.NamingPromptData{
		MaxLength:      n.maxLength,
		CaptureContext: captureContext,
	})
	if err != nil {
		log.Warn().Err(err).Str("file", base).Msg("Failed to build naming prompt")
		return ""
	}

	start := time.Now()
	raw, err := n.retrier.Do(ctx, func() (string, error) {
		if err := n.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return n.generate(ctx, n.model, prompt, imageJPEG)
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("file", base).
			Msg("AI naming failed, using original filename")
		return ""
	}

	cleaned := Sanitize(raw, n.maxLength, stem)

	log.Debug().
		Str("file", base).
		Str("generated", strings.TrimSpace(raw)).
		Str("cleaned", cleaned).
		Dur("duration", time.Since(start)).
		Msg("AI filename generated")

	return cleaned
}

// geminiGenerate adapts a Gemini client to generateFunc: one user turn with
// the inline JPEG first and the instruction prompt last.
func geminiGenerate(client *genai.Client) generateFunc {
	return func(ctx context.Context, model, prompt string, imageJPEG []byte) (string, error) {
		contents := []*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: imageJPEG}},
				{Text: prompt},
			},
		}}

		resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return "", fmt.Errorf("received empty response from Gemini API")
		}

		var result strings.Builder
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				result.WriteString(part.Text)
			}
		}
		return result.String(), nil
	}
}
