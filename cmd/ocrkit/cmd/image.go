package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/ocrkit-go/ocrkit/internal/pipeline"
	"github.com/spf13/cobra"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

var imageCmd = &cobra.Command{
	Use:   "image [files...]",
	Short: "Extract text from image files",
	Long: `Run the OCR pipeline on one or more image files and print the
recognized text.

Supported formats: JPEG, PNG, GIF, BMP

Examples:
  ocrkit image photo.jpg
  ocrkit image a.png b.png --format json`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}
		format, _ := cmd.Flags().GetString("format")
		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format %q (text or json)", format)
		}

		p, err := buildPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()
		if appConfig.Pipeline.Warmup {
			p.Warmup()
		}

		opts := appConfig.Options()
		for _, path := range args {
			img, err := loadImage(path)
			if err != nil {
				return err
			}
			res := p.Detect(img, opts)
			if err := printResult(cmd, path, res, format, len(args) > 1); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	imageCmd.Flags().String("format", outputFormatText, "output format (text, json)")
	rootCmd.AddCommand(imageCmd)
}

func buildPipeline() (*pipeline.Pipeline, error) {
	return pipeline.NewBuilder().
		WithModelsDir(appConfig.ModelsDir).
		WithNumThreads(appConfig.Pipeline.NumThreads).
		Build()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

type fileResult struct {
	File   string             `json:"file"`
	Result pipeline.OcrResult `json:"result"`
}

func printResult(cmd *cobra.Command, path string, res pipeline.OcrResult, format string, multiple bool) error {
	out := cmd.OutOrStdout()
	if format == outputFormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fileResult{File: path, Result: res})
	}
	if multiple {
		fmt.Fprintf(out, "== %s ==\n", path)
	}
	if text := res.Text(); text != "" {
		fmt.Fprintln(out, text)
	}
	return nil
}
