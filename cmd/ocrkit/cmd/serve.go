package cmd

import (
	"os/signal"
	"syscall"

	"github.com/ocrkit-go/ocrkit/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OCR HTTP server",
	Long: `Start an HTTP server exposing the OCR pipeline.

Endpoints:
  POST /v1/ocr   multipart upload ("image" field), returns JSON text blocks
  GET  /healthz  liveness probe
  GET  /metrics  Prometheus metrics

Example:
  ocrkit serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			appConfig.Server.Addr = addr
		}

		p, err := buildPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()
		if appConfig.Pipeline.Warmup {
			p.Warmup()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(p, appConfig.Options(), appConfig.Server.Addr, appConfig.Server.MaxUploadMB)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
