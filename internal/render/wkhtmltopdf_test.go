package render

import (
	"context"
	"io"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRenderPDF_MissingBinary(t *testing.T) {
	r := NewPDFRenderer("/nonexistent/wkhtmltopdf", testLogger())
	_, err := r.RenderPDF(context.Background(), "<html></html>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}

func TestRenderPDF_RoundTrip(t *testing.T) {
	if _, err := exec.LookPath("wkhtmltopdf"); err != nil {
		t.Skip("wkhtmltopdf not installed")
	}
	r := NewPDFRenderer("", testLogger())
	pdfBytes, err := r.RenderPDF(context.Background(), "<html><body><h1>hi</h1></body></html>")
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 4)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
