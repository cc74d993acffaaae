// Package convert implements the apply-style endpoint, which restyles an
// input PDF with the look of a sample PDF.
package convert

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/config"
	"github.com/papermorph/papermorph/handlers"
	"github.com/papermorph/papermorph/internal/render"
	"github.com/papermorph/papermorph/internal/services"
)

// Renderer converts an HTML document to PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, htmlDoc string) ([]byte, error)
}

// Handler handles style application uploads
type Handler struct {
	service  *services.ExtractService
	renderer Renderer
	config   *config.Config
	logger   *logrus.Logger
}

// NewHandler creates a new convert handler
func NewHandler(service *services.ExtractService, renderer Renderer, config *config.Config, logger *logrus.Logger) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		config:   config,
		logger:   logger,
	}
}

func (h *Handler) savePDF(c *gin.Context, field string) (string, bool) {
	path, err := handlers.FormPDF(c, h.config, field)
	if err != nil {
		h.logger.WithError(err).WithField("field", field).Warn("Rejected upload")
		c.JSON(handlers.StatusForUploadError(err), gin.H{"error": err.Error()})
		return "", false
	}
	if err := h.service.Validate(path); err != nil {
		h.logger.WithError(err).WithField("field", field).Warn("Upload failed PDF validation")
		_ = os.Remove(path)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid PDF file"})
		return "", false
	}
	return path, true
}

// ApplyStyle handles POST /api/v1/apply-style-upload. It expects multipart
// fields sample_pdf and input_pdf plus an optional output form field
// ("html", the default, or "pdf") and responds with the restyled document.
func (h *Handler) ApplyStyle(c *gin.Context) {
	samplePath, ok := h.savePDF(c, "sample_pdf")
	if !ok {
		return
	}
	defer func() { _ = os.Remove(samplePath) }()

	inputPath, ok := h.savePDF(c, "input_pdf")
	if !ok {
		return
	}
	defer func() { _ = os.Remove(inputPath) }()

	output := strings.ToLower(c.DefaultPostForm("output", "html"))

	htmlDoc, err := h.service.ApplyStyle(samplePath, inputPath)
	if err != nil {
		h.logger.WithError(err).Error("Apply style failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if output != "pdf" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlDoc))
		return
	}

	pdfBytes, err := h.renderer.RenderPDF(c.Request.Context(), htmlDoc)
	if err != nil {
		if errors.Is(err, render.ErrRendererUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"hint":  "Install wkhtmltopdf or point PAPERMORPH_WKHTMLTOPDF at the binary.",
			})
			return
		}
		h.logger.WithError(err).Error("PDF rendering failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="converted.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
