package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papermorph/papermorph/config"
	"github.com/papermorph/papermorph/internal/metrics"
	"github.com/papermorph/papermorph/utils"
)

// FormPDF saves the named multipart field into the configured upload
// directory, enforcing the size limit and the PDF header sniff. Callers are
// responsible for removing the returned file when done.
func FormPDF(c *gin.Context, cfg *config.Config, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing multipart field %q", field)
	}
	path, size, err := utils.SaveUpload(cfg.UploadDir, fh, cfg.MaxUploadSize)
	if err != nil {
		return "", err
	}
	metrics.ObserveUpload(size)
	return path, nil
}

// StatusForUploadError maps upload failures onto HTTP status codes.
func StatusForUploadError(err error) int {
	if errors.Is(err, utils.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
