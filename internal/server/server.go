// Package server exposes the OCR pipeline over HTTP with health and
// Prometheus metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/ocrkit-go/ocrkit/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the OCR capability the server fronts. *pipeline.Pipeline
// satisfies it; tests use stubs.
type Engine interface {
	Detect(img image.Image, opts pipeline.Options) pipeline.OcrResult
}

// Server handles HTTP OCR requests.
type Server struct {
	engine      Engine
	opts        pipeline.Options
	addr        string
	maxUploadMB int64
}

// New builds a server around an engine. opts are applied to every request.
func New(engine Engine, opts pipeline.Options, addr string, maxUploadMB int) *Server {
	if maxUploadMB < 1 {
		maxUploadMB = 32
	}
	return &Server{
		engine:      engine,
		opts:        opts,
		addr:        addr,
		maxUploadMB: int64(maxUploadMB),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/ocr", s.handleOCR)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type ocrResponse struct {
	Text       string               `json:"text"`
	TextBlocks []pipeline.TextBlock `json:"text_blocks"`
	ElapsedMs  float64              `json:"elapsed_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, r, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleOCR accepts a multipart upload under the "image" field and returns
// the recognized text blocks as JSON.
func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "failed to parse form data")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "no image file provided")
		return
	}
	defer func() { _ = file.Close() }()
	uploadSizeBytes.Observe(float64(header.Size))

	img, _, err := image.Decode(file)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "unsupported or corrupt image")
		return
	}

	start := time.Now()
	res := s.engine.Detect(img, s.opts)
	ocrProcessingDuration.Observe(time.Since(start).Seconds())
	ocrRegionsDetected.Observe(float64(len(res.TextBlocks)))

	blocks := res.TextBlocks
	if blocks == nil {
		blocks = []pipeline.TextBlock{}
	}
	s.writeJSON(w, r, http.StatusOK, ocrResponse{
		Text:       res.Text(),
		TextBlocks: blocks,
		ElapsedMs:  float64(res.TotalElapsed) / float64(time.Millisecond),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{Error: msg})
}
