package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ocrkit-go/ocrkit/internal/pipeline"
	"github.com/ocrkit-go/ocrkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns a canned result and records the image it saw.
type stubEngine struct {
	result pipeline.OcrResult
	sawDx  int
}

func (s *stubEngine) Detect(img image.Image, _ pipeline.Options) pipeline.OcrResult {
	s.sawDx = img.Bounds().Dx()
	return s.result
}

func multipartImage(t *testing.T, field string, img image.Image) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "test.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(fw, img))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestServer(engine Engine) *httptest.Server {
	s := New(engine, pipeline.DefaultOptions(), ":0", 8)
	return httptest.NewServer(s.Handler())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/healthz", "text/plain", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestOCREndpoint(t *testing.T) {
	engine := &stubEngine{result: pipeline.OcrResult{
		TextBlocks: []pipeline.TextBlock{
			{Text: "hello", RecognitionScore: 0.9},
			{Text: "world", RecognitionScore: 0.8},
		},
	}}
	ts := newTestServer(engine)
	defer ts.Close()

	body, contentType := multipartImage(t, "image", testutil.SolidImage(64, 32, color.White))
	resp, err := http.Post(ts.URL+"/v1/ocr", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ocrResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "hello\nworld", out.Text)
	assert.Len(t, out.TextBlocks, 2)
	assert.Equal(t, 64, engine.sawDx)
}

func TestOCREndpointEmptyResult(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	body, contentType := multipartImage(t, "image", testutil.SolidImage(32, 32, color.White))
	resp, err := http.Post(ts.URL+"/v1/ocr", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ocrResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Text)
	assert.NotNil(t, out.TextBlocks)
	assert.Empty(t, out.TextBlocks)
}

func TestOCREndpointRejectsMissingFile(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	body, contentType := multipartImage(t, "wrong_field", testutil.SolidImage(32, 32, color.White))
	resp, err := http.Post(ts.URL+"/v1/ocr", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOCREndpointRejectsCorruptImage(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "garbage.bin")
	require.NoError(t, err)
	_, err = fw.Write([]byte("this is not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/v1/ocr", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOCREndpointRejectsGet(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/ocr")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(&stubEngine{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
