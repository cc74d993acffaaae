// Package pdf extracts text from PDF files at two levels of detail: styled
// spans carrying font metadata, and plain per-page text recovered from the
// raw content streams.
package pdf

import (
	"fmt"
	"math"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/models"
)

// Parser reads uploaded PDF files from disk.
type Parser struct {
	conf   *model.Configuration
	logger *logrus.Logger
}

// NewParser creates a parser with a relaxed pdfcpu configuration, so that
// slightly malformed documents still get processed.
func NewParser(logger *logrus.Logger) *Parser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Parser{conf: conf, logger: logger}
}

// Validate checks that the file is a readable PDF.
func (p *Parser) Validate(path string) error {
	return api.ValidateFile(path, p.conf)
}

// PageCount returns the number of pages in the document.
func (p *Parser) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

// ExtractSpans returns styled text spans in content order. Each span is a
// run of text with uniform font and size on a single line. A page whose
// content cannot be parsed is logged and skipped rather than failing the
// whole document.
func (p *Parser) ExtractSpans(path string) ([]models.Span, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var spans []models.Span
	total := reader.NumPage()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts, err := pageContent(page)
		if err != nil {
			p.logger.WithError(err).WithField("page", pageNum).Warn("Skipping unparseable page")
			continue
		}
		spans = append(spans, mergeRuns(pageNum, texts)...)
	}
	return spans, nil
}

// pageContent isolates the content parse because the underlying reader
// panics on some malformed pages.
func pageContent(page ledongthuc.Page) (texts []ledongthuc.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content parse failed: %v", r)
		}
	}()
	return page.Content().Text, nil
}

// mergeRuns coalesces consecutive glyph runs that share font, size and
// baseline into single spans.
func mergeRuns(pageNum int, texts []ledongthuc.Text) []models.Span {
	var spans []models.Span
	var prev *ledongthuc.Text
	for i := range texts {
		t := texts[i]
		if t.S == "" {
			continue
		}
		if prev != nil && len(spans) > 0 &&
			prev.Font == t.Font && prev.FontSize == t.FontSize && sameBaseline(prev.Y, t.Y) {
			spans[len(spans)-1].Text += t.S
		} else {
			spans = append(spans, models.Span{
				Page: pageNum,
				Font: t.Font,
				Size: t.FontSize,
				Text: t.S,
			})
		}
		prev = &texts[i]
	}
	return spans
}

func sameBaseline(a, b float64) bool {
	return math.Abs(a-b) < 0.5
}
