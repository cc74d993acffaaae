package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// ErrRendererUnavailable indicates that no wkhtmltopdf binary could be found.
var ErrRendererUnavailable = errors.New("wkhtmltopdf not found; install wkhtmltopdf or set PAPERMORPH_WKHTMLTOPDF")

// PDFRenderer converts HTML documents to PDF bytes by invoking wkhtmltopdf.
type PDFRenderer struct {
	binPath string
	logger  *logrus.Logger
}

// NewPDFRenderer creates a renderer. binPath overrides PATH lookup when set.
func NewPDFRenderer(binPath string, logger *logrus.Logger) *PDFRenderer {
	return &PDFRenderer{binPath: binPath, logger: logger}
}

// RenderPDF writes the HTML to a temp file, runs wkhtmltopdf on it and reads
// the resulting PDF back.
func (r *PDFRenderer) RenderPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	bin := r.binPath
	if bin == "" {
		found, err := exec.LookPath("wkhtmltopdf")
		if err != nil {
			return nil, ErrRendererUnavailable
		}
		bin = found
	} else if _, err := os.Stat(bin); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRendererUnavailable, bin)
	}

	htmlFile, err := os.CreateTemp("", "papermorph-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp html: %w", err)
	}
	htmlPath := htmlFile.Name()
	pdfPath := htmlPath + ".pdf"
	defer func() {
		_ = os.Remove(htmlPath)
		_ = os.Remove(pdfPath)
	}()

	if _, err := htmlFile.WriteString(htmlDoc); err != nil {
		_ = htmlFile.Close()
		return nil, fmt.Errorf("write temp html: %w", err)
	}
	if err := htmlFile.Close(); err != nil {
		return nil, fmt.Errorf("close temp html: %w", err)
	}

	args := []string{
		"--quiet",
		"--disable-smart-shrinking",
		"--enable-local-file-access",
		"--print-media-type",
		"--no-stop-slow-scripts",
		"--dpi", "300",
		"--margin-top", "24mm",
		"--margin-bottom", "24mm",
		"--margin-left", "18mm",
		"--margin-right", "18mm",
		htmlPath,
		pdfPath,
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		r.logger.WithError(err).WithField("output", string(out)).Error("wkhtmltopdf failed")
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read rendered pdf: %w", err)
	}
	return pdfBytes, nil
}
