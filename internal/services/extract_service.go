package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/internal/mapper"
	"github.com/papermorph/papermorph/internal/metrics"
	"github.com/papermorph/papermorph/internal/render"
	"github.com/papermorph/papermorph/internal/style"
	"github.com/papermorph/papermorph/models"
)

// DocumentParser is the PDF access layer the service depends on.
type DocumentParser interface {
	Validate(path string) error
	ExtractSpans(path string) ([]models.Span, error)
	ExtractPageTexts(path string) ([]models.PageText, error)
}

// ExtractService orchestrates the extraction pipeline: spans to style
// profile, pages to content blocks, and both combined into styled HTML.
type ExtractService struct {
	parser DocumentParser
	logger *logrus.Logger
}

// NewExtractService creates a new extract service
func NewExtractService(parser DocumentParser, logger *logrus.Logger) *ExtractService {
	return &ExtractService{parser: parser, logger: logger}
}

// Validate checks that a stored upload is a readable PDF.
func (s *ExtractService) Validate(path string) error {
	return s.parser.Validate(path)
}

// ExtractStyle derives a style profile from a sample PDF. A nil profile
// means the document had no extractable spans.
func (s *ExtractService) ExtractStyle(path string) (profile *models.StyleProfile, err error) {
	started := time.Now()
	defer func() { metrics.ObserveExtraction("style", err, started) }()

	spans, err := s.parser.ExtractSpans(path)
	if err != nil {
		return nil, fmt.Errorf("extract spans: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"path": path, "spans": len(spans)}).Debug("Extracted spans for style profile")
	return style.BuildProfile(spans), nil
}

// ExtractContent returns the plain text of every page of an input PDF.
func (s *ExtractService) ExtractContent(path string) (blocks []models.PageText, err error) {
	started := time.Now()
	defer func() { metrics.ObserveExtraction("content", err, started) }()

	blocks, err = s.parser.ExtractPageTexts(path)
	if err != nil {
		return nil, fmt.Errorf("extract page texts: %w", err)
	}
	return blocks, nil
}

// ApplyStyle runs the full pipeline: build a style profile from the sample,
// structure the input's content, and render it as a styled HTML document.
// The span-based structure is preferred; when the input yields no spans the
// plain page text is used instead.
func (s *ExtractService) ApplyStyle(samplePath, inputPath string) (htmlDoc string, err error) {
	started := time.Now()
	defer func() { metrics.ObserveExtraction("apply_style", err, started) }()

	sampleSpans, err := s.parser.ExtractSpans(samplePath)
	if err != nil {
		return "", fmt.Errorf("extract sample spans: %w", err)
	}
	profile := style.BuildProfile(sampleSpans)

	inputSpans, err := s.parser.ExtractSpans(inputPath)
	if err != nil {
		return "", fmt.Errorf("extract input spans: %w", err)
	}

	var nodes []models.Node
	if grouped := mapper.GroupSpansByLine(inputSpans); len(grouped) > 0 {
		nodes = mapper.FromSpans(grouped, profile)
	} else {
		s.logger.WithField("path", inputPath).Debug("No spans in input, falling back to page text")
		blocks, err := s.parser.ExtractPageTexts(inputPath)
		if err != nil {
			return "", fmt.Errorf("extract page texts: %w", err)
		}
		nodes = mapper.FromPageTexts(blocks)
	}

	return render.HTML(nodes, profile, mapper.Title(nodes)), nil
}
