// Package cmd implements the ocrkit command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ocrkit-go/ocrkit/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ocrkit",
	Short: "Scene-text OCR: detection, rectification and recognition",
	Long: `ocrkit extracts text from images with a PaddleOCR-style pipeline:
DB text detection, perspective rectification, orientation classification
and CTC text recognition, all running on ONNX Runtime.

Examples:
  ocrkit image photo.jpg
  ocrkit image scan.png --format json
  ocrkit serve --addr :8080`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: search ., ~/.config/ocrkit, /etc/ocrkit)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("models-dir", "", "directory containing the ONNX models")
	pf.Int("num-threads", 0, "intra-op threads per inference session (0 = runtime default)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loader := config.NewLoader()
		v := loader.Viper()
		if err := v.BindPFlag("log_level", pf.Lookup("log-level")); err != nil {
			return err
		}
		if err := v.BindPFlag("models_dir", pf.Lookup("models-dir")); err != nil {
			return err
		}
		if err := v.BindPFlag("pipeline.num_threads", pf.Lookup("num-threads")); err != nil {
			return err
		}

		cfg, err := loader.Load(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		setupLogging(cfg.LogLevel)
		return nil
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
