// Package extract implements the style and content extraction endpoints.
package extract

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/config"
	"github.com/papermorph/papermorph/handlers"
	"github.com/papermorph/papermorph/internal/services"
)

// Handler handles extraction uploads
type Handler struct {
	service *services.ExtractService
	config  *config.Config
	logger  *logrus.Logger
}

// NewHandler creates a new extraction handler
func NewHandler(service *services.ExtractService, config *config.Config, logger *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// savePDF stores and validates one uploaded PDF field, writing the error
// response itself when something is wrong.
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

// ExtractStyle handles POST /api/v1/extract-style. It expects a multipart
// field sample_pdf and responds with the derived style profile.
func (h *Handler) ExtractStyle(c *gin.Context) {
	path, ok := h.savePDF(c, "sample_pdf")
	if !ok {
		return
	}
	defer func() { _ = os.Remove(path) }()

	profile, err := h.service.ExtractStyle(path)
	if err != nil {
		h.logger.WithError(err).Error("Style extraction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		// No spans in the document; an empty profile, not an error.
		c.JSON(http.StatusOK, gin.H{"style_profile": gin.H{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"style_profile": profile})
}

// ExtractContent handles POST /api/v1/extract-content. It expects a
// multipart field input_pdf and responds with per-page content blocks.
func (h *Handler) ExtractContent(c *gin.Context) {
	path, ok := h.savePDF(c, "input_pdf")
	if !ok {
		return
	}
	defer func() { _ = os.Remove(path) }()

	blocks, err := h.service.ExtractContent(path)
	if err != nil {
		h.logger.WithError(err).Error("Content extraction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content_blocks": blocks})
}
