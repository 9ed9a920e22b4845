package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/logostamp/internal/batch"
	"github.com/fpang/logostamp/internal/logging"
	"github.com/fpang/logostamp/internal/naming"
	"github.com/fpang/logostamp/internal/stamp"
)

// CLI flags
var (
	outputDirFlag     string
	verticalPosFlag   string
	horizontalPosFlag string
	paddingFlag       int
	logoScaleFlag     float64
	opacityFlag       float64
	suffixFlag        string
	noRecursiveFlag   bool
	useAINamingFlag   bool
	apiKeyFlag        string
	modelFlag         string
	maxNameLengthFlag int
)

// rootCmd is the main Cobra command for the logostamp CLI.
var rootCmd = &cobra.Command{
	Use:   "logostamp <folder> <logo>",
	Short: "Batch-apply a logo watermark to a folder of images",
	Long: `Logostamp walks a folder of images (.jpg, .jpeg, .png), stamps a logo onto
each one with configurable placement, scale and opacity, and writes the
results to an output directory.

With --use-ai-naming each output file gets a descriptive, filename-safe name
generated by Gemini from the image content; when naming fails the original
filename is kept.

Examples:
  logostamp ./photos ./logo.png
  logostamp ./photos ./logo.png --vertical-pos top --horizontal-pos right
  logostamp ./photos ./logo.png --logo-scale 0.15 --opacity 0.6 --suffix _branded
  logostamp ./photos ./logo.png --use-ai-naming --model gemini-2.5-flash`,
	Args: cobra.ExactArgs(2),
	Run:  runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&outputDirFlag, "save-dir", "o", "", "Directory for stamped images (default: <folder>/output, must not exist)")
	rootCmd.Flags().StringVar(&verticalPosFlag, "vertical-pos", "bottom", "Vertical logo position: top or bottom")
	rootCmd.Flags().StringVar(&horizontalPosFlag, "horizontal-pos", "center", "Horizontal logo position: left, center or right")
	rootCmd.Flags().IntVar(&paddingFlag, "padding", 10, "Padding around the logo in pixels")
	rootCmd.Flags().Float64Var(&logoScaleFlag, "logo-scale", 0.2, "Logo width as a fraction of the image width (0.01 to 1.0)")
	rootCmd.Flags().Float64Var(&opacityFlag, "opacity", 1.0, "Logo opacity (0.0 to 1.0)")
	rootCmd.Flags().StringVar(&suffixFlag, "suffix", "", "Suffix added to output filenames, before the extension")
	rootCmd.Flags().BoolVar(&noRecursiveFlag, "no-recursive", false, "Only stamp images directly inside the folder")
	rootCmd.Flags().BoolVar(&useAINamingFlag, "use-ai-naming", false, "Generate descriptive filenames with Gemini")
	rootCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Gemini model for filename generation (default: "+naming.DefaultModel+")")
	rootCmd.Flags().IntVar(&maxNameLengthFlag, "max-filename-length", 50, "Maximum length for AI-generated filenames (10 to 100)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain validates flags at the shell boundary and hands the typed job to
// the batch orchestrator.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()

	vertical, err := stamp.ParseVerticalAnchor(verticalPosFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid --vertical-pos")
	}
	horizontal, err := stamp.ParseHorizontalAnchor(horizontalPosFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid --horizontal-pos")
	}
	if opacityFlag < 0.0 || opacityFlag > 1.0 {
		log.Fatal().Float64("opacity", opacityFlag).Msg("Opacity must be between 0.0 and 1.0")
	}
	if logoScaleFlag < 0.01 || logoScaleFlag > 1.0 {
		log.Fatal().Float64("logo_scale", logoScaleFlag).Msg("Logo scale must be between 0.01 and 1.0")
	}
	if maxNameLengthFlag < 10 || maxNameLengthFlag > 100 {
		log.Fatal().Int("max_filename_length", maxNameLengthFlag).Msg("max-filename-length must be between 10 and 100")
	}

	job := batch.Job{
		InputDir:  args[0],
		LogoPath:  args[1],
		OutputDir: outputDirFlag,
		Config: stamp.Config{
			Vertical:   vertical,
			Horizontal: horizontal,
			Padding:    paddingFlag,
			LogoScale:  logoScaleFlag,
			Opacity:    opacityFlag,
		},
		Recursive:         !noRecursiveFlag,
		Suffix:            suffixFlag,
		UseAINaming:       useAINamingFlag,
		APIKey:            apiKeyFlag,
		Model:             modelFlag,
		MaxFilenameLength: maxNameLengthFlag,
	}

	if err := batch.Run(context.Background(), job); err != nil {
		log.Fatal().Err(err).Msg("Batch failed")
	}
}
