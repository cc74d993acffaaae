package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/config"
	"github.com/papermorph/papermorph/internal/render"
	"github.com/papermorph/papermorph/internal/services"
	"github.com/papermorph/papermorph/models"
)

type fakeParser struct {
	spans []models.Span
	pages []models.PageText
}

func (f *fakeParser) Validate(path string) error { return nil }

func (f *fakeParser) ExtractSpans(path string) ([]models.Span, error) {
	return f.spans, nil
}

func (f *fakeParser) ExtractPageTexts(path string) ([]models.PageText, error) {
	return f.pages, nil
}

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	return f.pdf, f.err
}

func setupRouter(t *testing.T, parser *fakeParser, renderer Renderer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		UploadDir:     t.TempDir(),
		MaxUploadSize: 1024 * 1024,
	}
	handler := NewHandler(services.NewExtractService(parser, logger), renderer, cfg, logger)

	router := gin.New()
	router.POST("/api/v1/apply-style-upload", handler.ApplyStyle)
	return router
}

// applyStyleRequest builds a multipart request with sample_pdf, input_pdf and
// an optional output field.
func applyStyleRequest(t *testing.T, output string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range []string{"sample_pdf", "input_pdf"} {
		part, err := w.CreateFormFile(field, field+".pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4\nfake body")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if output != "" {
		if err := w.WriteField("output", output); err != nil {
			t.Fatalf("write output field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/apply-style-upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func sampleSpans() []models.Span {
	return []models.Span{
		{Page: 1, Font: "Georgia-Bold", Size: 24, Text: "Report Title"},
		{Page: 1, Font: "Georgia", Size: 11, Text: "First paragraph of the body."},
		{Page: 1, Font: "Georgia", Size: 11, Text: "Second paragraph fragment."},
	}
}

func TestApplyStyle_HTMLDefault(t *testing.T) {
	parser := &fakeParser{spans: sampleSpans()}
	router := setupRouter(t, parser, &fakeRenderer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, applyStyleRequest(t, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<!doctype html>") {
		t.Errorf("expected full HTML document, got %s", body)
	}
	if !strings.Contains(body, "Georgia") {
		t.Errorf("expected sample font in CSS, got %s", body)
	}
}

func TestApplyStyle_PDF(t *testing.T) {
	parser := &fakeParser{spans: sampleSpans()}
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.4 rendered")}
	router := setupRouter(t, parser, renderer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, applyStyleRequest(t, "pdf"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "converted.pdf") {
		t.Errorf("expected attachment disposition, got %q", cd)
	}
	if !bytes.Equal(w.Body.Bytes(), renderer.pdf) {
		t.Errorf("response body does not match rendered PDF")
	}
}

func TestApplyStyle_RendererUnavailable(t *testing.T) {
	parser := &fakeParser{spans: sampleSpans()}
	renderer := &fakeRenderer{err: render.ErrRendererUnavailable}
	router := setupRouter(t, parser, renderer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, applyStyleRequest(t, "pdf"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "hint") {
		t.Errorf("expected install hint in response, got %s", w.Body.String())
	}
}

func TestApplyStyle_RendererError(t *testing.T) {
	parser := &fakeParser{spans: sampleSpans()}
	renderer := &fakeRenderer{err: errors.New("exit status 1")}
	router := setupRouter(t, parser, renderer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, applyStyleRequest(t, "pdf"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApplyStyle_MissingInput(t *testing.T) {
	router := setupRouter(t, &fakeParser{}, &fakeRenderer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("sample_pdf", "sample.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/apply-style-upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "input_pdf") {
		t.Errorf("expected error to name input_pdf, got %s", w.Body.String())
	}
}

func TestApplyStyle_PageTextFallback(t *testing.T) {
	parser := &fakeParser{
		spans: nil,
		pages: []models.PageText{
			{Page: 1, Text: "OVERVIEW\nA short line of body text follows here."},
		},
	}
	router := setupRouter(t, parser, &fakeRenderer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, applyStyleRequest(t, "html"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<h2>OVERVIEW</h2>") {
		t.Errorf("expected fallback heading, got %s", w.Body.String())
	}
}
