package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/models"
)

// ExtractPageTexts returns the plain text of every page. pdfcpu dumps the
// raw content streams into a temp dir; the text-show operators in each
// stream are then decoded into readable lines. Pages without extractable
// text yield an empty string.
func (p *Parser) ExtractPageTexts(path string) ([]models.PageText, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "papermorph_content_*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			p.logger.WithError(err).Warn("Failed to clean up content temp dir")
		}
	}()

	if err := api.ExtractContentFile(path, tempDir, nil, p.conf); err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pages := make([]models.PageText, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, pageNum))
		raw, err := os.ReadFile(contentFile)
		if err != nil {
			// No content stream for this page.
			p.logger.WithFields(logrus.Fields{"page": pageNum, "file": contentFile}).Debug("No content stream extracted")
			pages = append(pages, models.PageText{Page: pageNum, Text: ""})
			continue
		}
		pages = append(pages, models.PageText{Page: pageNum, Text: textFromContentStream(string(raw))})
	}
	return pages, nil
}

// textFromContentStream decodes the text-show operators (Tj, TJ, ', ") of a
// raw PDF content stream. Each stream line holding text ops becomes one
// output line, which keeps enough structure for downstream line-based
// heuristics.
func textFromContentStream(content string) string {
	var outLines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, " Tj") && !strings.Contains(line, " TJ") &&
			!strings.Contains(line, "' ") && !strings.Contains(line, "\" ") {
			continue
		}
		texts := textOperands(line)
		if len(texts) == 0 {
			continue
		}
		joined := cleanupExtractedText(strings.Join(texts, ""))
		if joined != "" {
			outLines = append(outLines, joined)
		}
	}
	return strings.Join(outLines, "\n")
}

// textOperands pulls every string operand out of one content-stream line,
// handling parenthesized strings with escapes as well as hex strings.
func textOperands(operation string) []string {
	var texts []string
	inText := false
	start := -1

	for i, char := range operation {
		switch {
		case char == '(' && (i == 0 || operation[i-1] != '\\') && !inText:
			inText = true
			start = i + 1
		case char == ')' && inText && (i == 0 || operation[i-1] != '\\'):
			if start != -1 && start <= i {
				if text := unescapeTextString(operation[start:i]); strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
			inText = false
			start = -1
		case char == '<' && !inText:
			if end := strings.IndexByte(operation[i+1:], '>'); end >= 0 {
				if text := decodeHexString(operation[i+1 : i+1+end]); strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
		}
	}
	return texts
}

// unescapeTextString resolves the PDF string escape sequences.
func unescapeTextString(text string) string {
	replacer := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(text)
}

// decodeHexString decodes a PDF hex string such as <48656C6C6F>. Odd-length
// strings are padded with a trailing zero per the PDF spec. Anything that is
// not plausibly single-byte text is dropped.
func decodeHexString(hex string) string {
	hex = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, hex)
	if hex == "" {
		return ""
	}
	if len(hex)%2 == 1 {
		hex += "0"
	}
	var out strings.Builder
	for i := 0; i+1 < len(hex); i += 2 {
		hi, ok1 := hexVal(hex[i])
		lo, ok2 := hexVal(hex[i+1])
		if !ok1 || !ok2 {
			return ""
		}
		b := hi<<4 | lo
		if b < 32 || b > 126 {
			// Multi-byte encoded text; not decodable without the font's CMap.
			return ""
		}
		out.WriteByte(b)
	}
	return out.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// octalReplacements maps the octal escapes commonly seen in PDF strings to
// their readable equivalents.
var octalReplacements = map[string]string{
	`\037`: "",
	`\260`: "°",
	`\256`: "®",
	`\251`: "©",
	`\221`: "‘",
	`\231`: "’",
	`\223`: "“",
	`\224`: "”",
	`\226`: "–",
	`\227`: "—",
	`\240`: " ",
	`\012`: "\n",
	`\015`: "\r",
	`\011`: "\t",
}

// cleanupExtractedText normalizes decoded text: known octal escapes are
// substituted, unknown ones dropped, control bytes replaced, and runs of
// spaces collapsed.
func cleanupExtractedText(text string) string {
	text = strings.TrimSpace(text)

	for octal, replacement := range octalReplacements {
		text = strings.ReplaceAll(text, octal, replacement)
	}
	text = dropOctalEscapes(text)
	text = stripBinary(text)

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return strings.TrimSpace(text)
}

// dropOctalEscapes removes any remaining three-digit octal escapes.
func dropOctalEscapes(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		if i+3 < len(text) && text[i] == '\\' &&
			text[i+1] >= '0' && text[i+1] <= '7' &&
			text[i+2] >= '0' && text[i+2] <= '7' &&
			text[i+3] >= '0' && text[i+3] <= '7' {
			i += 4
			continue
		}
		out.WriteByte(text[i])
		i++
	}
	return out.String()
}

// stripBinary keeps printable and common typographic runes, maps control
// characters to spaces and drops the rest.
func stripBinary(text string) string {
	var out strings.Builder
	for _, r := range text {
		switch {
		case r >= 32 && r <= 126,
			r == '\n' || r == '\r' || r == '\t',
			r >= 0x00A0 && r <= 0x00FF,
			r >= 0x2000 && r <= 0x206F:
			out.WriteRune(r)
		case r < 32:
			out.WriteRune(' ')
		}
	}
	return out.String()
}
