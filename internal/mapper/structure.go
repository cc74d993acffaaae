// Package mapper turns extracted spans or page texts into the document
// content structure consumed by the HTML formatter.
package mapper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/papermorph/papermorph/internal/style"
	"github.com/papermorph/papermorph/models"
)

var listLeadRe = regexp.MustCompile(`^([-*\x{2022}]|\d+\.)\s+`)

func isListLine(text string) bool {
	return listLeadRe.MatchString(strings.TrimSpace(text))
}

func stripListLead(text string) string {
	return listLeadRe.ReplaceAllString(strings.TrimSpace(text), "")
}

// GroupSpansByLine drops empty spans and rounds sizes, producing the small
// units the structure builder works on. Spans are assumed to already be in
// reading order.
func GroupSpansByLine(spans []models.Span) []models.Span {
	var grouped []models.Span
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		grouped = append(grouped, models.Span{
			Page: s.Page,
			Font: s.Font,
			Size: math.Round(s.Size),
			Text: text,
		})
	}
	return grouped
}

// FromSpans converts grouped spans into content nodes. Spans whose size
// crosses a heading threshold become headings, list-marker lines open or
// extend list nodes, and everything else accumulates into paragraphs.
func FromSpans(spans []models.Span, profile *models.StyleProfile) []models.Node {
	var nodes []models.Node
	if len(spans) == 0 {
		return nodes
	}

	var paraBuf []string
	var listBuf []string
	inList := false

	flushPara := func() {
		if len(paraBuf) > 0 {
			nodes = append(nodes, models.Node{Type: models.NodeParagraph, Text: strings.Join(paraBuf, " ")})
			paraBuf = nil
		}
	}
	flushList := func() {
		if inList {
			nodes = append(nodes, models.Node{Type: models.NodeList, Ordered: false, Items: listBuf})
			listBuf = nil
			inList = false
		}
	}

	for _, s := range spans {
		role := style.InferRole(s, profile)
		text := strings.TrimSpace(s.Text)

		if isListLine(text) {
			flushPara()
			listBuf = append(listBuf, stripListLead(text))
			inList = true
			continue
		}
		flushList()

		if strings.HasPrefix(role, "H") {
			flushPara()
			level := 1
			if n, err := strconv.Atoi(role[1:]); err == nil {
				level = n
			}
			nodes = append(nodes, models.Node{Type: models.NodeHeading, Level: level, Text: text})
		} else {
			paraBuf = append(paraBuf, text)
		}
	}

	flushList()
	flushPara()
	return nodes
}

// FromPageTexts is the fallback builder used when no spans are available.
// It works line by line on plain page text, detecting list markers and
// treating short uppercase or TitleCase lines as headings.
func FromPageTexts(blocks []models.PageText) []models.Node {
	var nodes []models.Node
	for _, b := range blocks {
		var paraBuf []string
		var listBuf []string
		inList := false

		flushPara := func() {
			if len(paraBuf) > 0 {
				nodes = append(nodes, models.Node{Type: models.NodeParagraph, Text: strings.Join(paraBuf, " ")})
				paraBuf = nil
			}
		}
		flushList := func() {
			if inList {
				nodes = append(nodes, models.Node{Type: models.NodeList, Ordered: false, Items: listBuf})
				listBuf = nil
				inList = false
			}
		}

		for _, raw := range strings.Split(b.Text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if isListLine(line) {
				flushPara()
				listBuf = append(listBuf, stripListLead(line))
				inList = true
				continue
			}
			flushList()

			if looksLikeHeading(line) {
				flushPara()
				nodes = append(nodes, models.Node{Type: models.NodeHeading, Level: 2, Text: line})
			} else {
				paraBuf = append(paraBuf, line)
			}
		}

		flushList()
		flushPara()
	}
	return nodes
}

// looksLikeHeading applies the plain-text heading heuristic: a short line
// that is either all uppercase or TitleCase with at most six words.
func looksLikeHeading(line string) bool {
	if len(line) >= 80 {
		return false
	}
	if isUpper(line) {
		return true
	}
	first := []rune(line)[0]
	return unicode.IsUpper(first) && len(strings.Fields(line)) <= 6
}

// isUpper reports whether the line contains at least one cased rune and all
// cased runes are uppercase.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// Title picks a document title from the first heading node, if any.
func Title(nodes []models.Node) string {
	for _, n := range nodes {
		if n.IsHeading() {
			return n.Text
		}
	}
	return ""
}
