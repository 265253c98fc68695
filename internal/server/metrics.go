package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocrkit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	ocrProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ocrkit_ocr_processing_duration_seconds",
			Help:    "OCR processing duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	ocrRegionsDetected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ocrkit_ocr_regions_detected",
			Help:    "Number of text regions detected per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ocrkit_upload_size_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)
