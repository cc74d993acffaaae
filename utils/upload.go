package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

var (
	// ErrTooLarge indicates the upload exceeds the configured size limit.
	ErrTooLarge = errors.New("content too large")
	// ErrNotPDF indicates the upload does not look like a PDF file.
	ErrNotPDF = errors.New("uploaded file is not a PDF")
	// ErrEmptyUpload indicates an empty multipart file.
	ErrEmptyUpload = errors.New("empty upload")
)

// IsPDF reports whether content starts with the PDF magic header.
func IsPDF(content []byte) bool {
	return bytes.HasPrefix(content, pdfMagic)
}

// SaveUpload streams a multipart upload into dir under a random filename,
// keeping the original extension (".pdf" when missing). The upload is
// size-limited and sniffed for a PDF header before anything is written.
// Returns the stored path and the number of bytes written.
func SaveUpload(dir string, fh *multipart.FileHeader, limit int64) (string, int64, error) {
	if fh.Size > 0 && fh.Size > limit {
		return "", 0, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrTooLarge, fh.Size, limit)
	}

	src, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	head := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(src, head)
	if err == io.EOF {
		return "", 0, ErrEmptyUpload
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", 0, fmt.Errorf("read upload: %w", err)
	}
	if !IsPDF(head[:n]) {
		return "", 0, ErrNotPDF
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".pdf"
	}
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}

	// Allow one byte past the limit so an oversized stream is detectable.
	rest := io.LimitReader(src, limit-int64(n)+1)
	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), rest))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}
	if written > limit {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("%w: exceeds limit of %d bytes", ErrTooLarge, limit)
	}

	return path, written, nil
}
