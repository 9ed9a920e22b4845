// Package batch drives one watermarking pass over a directory of images:
// discover candidates, reject duplicate base filenames, prepare the output
// directory, then stamp (and optionally AI-name) every image.
package batch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fpang/logostamp/internal/auth"
	"github.com/fpang/logostamp/internal/filehandler"
	"github.com/fpang/logostamp/internal/naming"
	"github.com/fpang/logostamp/internal/stamp"
)

// Namer generates a filename stem for one image. An empty result means the
// caller keeps the original stem; a Namer never aborts the batch.
type Namer interface {
	Name(ctx context.Context, img image.Image, sourcePath string) string
}

// Job describes one batch run. Built from user input, validated once, then
// discarded after the pass completes or aborts.
type Job struct {
	InputDir string
	LogoPath string

	// OutputDir is where stamped images are written. Empty derives
	// <InputDir>/output, which must not already exist.
	OutputDir string

	Config    stamp.Config
	Recursive bool

	// Suffix is appended to the output stem, before the extension.
	Suffix string

	UseAINaming       bool
	APIKey            string
	Model             string
	MaxFilenameLength int
}

// DuplicateFilenameError reports two discovered files sharing a base
// filename. Flattening both into one output directory would silently
// overwrite one of them, so the whole batch aborts instead.
type DuplicateFilenameError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateFilenameError) Error() string {
	return fmt.Sprintf("duplicate filename %q:\n  - %s\n  - %s\n"+
		"An output directory from a previous run could be the cause. "+
		"Either delete it or disable recursive image search.",
		e.Name, e.First, e.Second)
}

// Run executes the batch job. The returned error is batch-fatal: duplicate
// filenames, unreadable logo, bad configuration or an unusable output
// directory. Per-image problems are logged and skipped instead.
func Run(ctx context.Context, job Job) error {
	if err := job.Config.Validate(); err != nil {
		return err
	}

	var namer Namer
	if job.UseAINaming {
		apiKey, err := auth.GetAPIKey(job.APIKey)
		if err != nil {
			return fmt.Errorf("AI naming requires an API key: %w", err)
		}
		client, err := naming.NewGeminiClient(ctx, apiKey)
		if err != nil {
			return err
		}
		model := naming.ResolveModel(job.Model)
		namer = naming.NewNamer(client, model, job.MaxFilenameLength)
		log.Info().Str("model", model).Msg("AI naming enabled")
	}

	return run(ctx, job, namer)
}

// run is Run minus the Gemini client construction, so tests can inject a
// fake namer.
func run(ctx context.Context, job Job, namer Namer) error {
	paths, err := filehandler.ScanImages(job.InputDir, job.Recursive)
	if err != nil {
		return err
	}

	if err := checkDuplicates(paths); err != nil {
		return err
	}

	outputDir, err := prepareOutputDir(job.InputDir, job.OutputDir)
	if err != nil {
		return err
	}

	// The logo is a required shared resource, loaded once per batch; no
	// partial output makes sense without it.
	logo, err := filehandler.LoadImage(job.LogoPath)
	if err != nil {
		return fmt.Errorf("logo could not be opened: %w", err)
	}

	var processed, skipped, aiNamed, fellBack int

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := filehandler.LoadImage(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Image could not be opened, skipping")
			skipped++
			continue
		}

		result, err := stamp.Composite(img, logo, job.Config)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Compositing failed, skipping")
			skipped++
			continue
		}

		base := filepath.Base(path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		if namer != nil {
			log.Info().Str("file", base).Msg("Analyzing image content for filename")
			if generated := namer.Name(ctx, img, path); generated != "" {
				stem = generated
				aiNamed++
			} else {
				log.Warn().Str("file", base).Msg("AI naming failed, using original filename")
				fellBack++
			}
		}

		savePath := filepath.Join(outputDir, stem+job.Suffix+ext)
		if err := filehandler.SaveImage(savePath, result); err != nil {
			return fmt.Errorf("failed to save %s: %w", savePath, err)
		}

		log.Info().Str("path", savePath).Msg("Saved stamped image")
		processed++
	}

	summary := log.Info().
		Int("processed", processed).
		Int("skipped", skipped)
	if namer != nil {
		summary = summary.Int("ai_named", aiNamed).Int("name_fallbacks", fellBack)
	}
	summary.Msg("Batch complete")

	return nil
}

// checkDuplicates builds the base-filename registry and rejects collisions
// before any file is processed.
func checkDuplicates(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if first, ok := seen[name]; ok {
			return &DuplicateFilenameError{Name: name, First: first, Second: path}
		}
		seen[name] = path
	}
	return nil
}

// prepareOutputDir resolves and creates the output directory. A derived
// directory must be fresh so a rerun cannot mix new output with (or rescan)
// a previous run's artifacts; an explicit directory is reused.
func prepareOutputDir(inputDir, outputDir string) (string, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		return outputDir, nil
	}

	derived := filepath.Join(inputDir, "output")
	log.Info().Str("path", derived).Msg("No output directory given, creating one inside the input folder")
	if err := os.Mkdir(derived, 0o755); err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s already exists; delete it or pass an explicit output directory", derived)
		}
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return derived, nil
}
