package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/papermorph/papermorph/models"
)

func TestHTML_Document(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeHeading, Level: 1, Text: "Report"},
		{Type: models.NodeParagraph, Text: "Plain body."},
	}
	doc := HTML(nodes, nil, "")

	assert.True(t, strings.HasPrefix(doc, "<!doctype html>"))
	assert.Contains(t, doc, "<h1>Report</h1>")
	assert.Contains(t, doc, "<p>Plain body.</p>")
	assert.Contains(t, doc, "@page { size: A4;")
	assert.Contains(t, doc, "<div class='document'>")
}

func TestHTML_TitlePrepended(t *testing.T) {
	doc := HTML(nil, nil, "My Title")
	assert.Contains(t, doc, "<h1>My Title</h1>")
}

func TestHTML_TopFontInCSS(t *testing.T) {
	profile := &models.StyleProfile{
		FontsTop: []models.FontStat{{Font: "Garamond", Count: 10}},
	}
	doc := HTML(nil, profile, "")
	assert.Contains(t, doc, "font-family: 'Garamond', sans-serif;")
}

func TestHTML_Escaping(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeParagraph, Text: `<script>alert("x")</script>`},
	}
	doc := HTML(nodes, nil, "")
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

func TestHTML_HeadingLevelClamped(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeHeading, Level: 9, Text: "deep"},
		{Type: models.NodeHeading, Text: "unleveled"},
	}
	doc := HTML(nodes, nil, "")
	assert.Contains(t, doc, "<h6>deep</h6>")
	assert.Contains(t, doc, "<h1>unleveled</h1>")
}

func TestHTML_Runs(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeParagraph, Runs: []models.Run{
			{Text: "normal "},
			{Text: "bold", Bold: true},
			{Text: " and "},
			{Text: "both", Bold: true, Italic: true},
		}},
	}
	doc := HTML(nodes, nil, "")
	assert.Contains(t, doc, "<strong>bold</strong>")
	assert.Contains(t, doc, "<strong><em>both</em></strong>")
}

func TestHTML_Lists(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeList, Items: []string{"a", "b"}},
		{Type: models.NodeList, Ordered: true, Items: []string{"one"}},
	}
	doc := HTML(nodes, nil, "")
	assert.Contains(t, doc, "<ul><li>a</li><li>b</li></ul>")
	assert.Contains(t, doc, "<ol><li>one</li></ol>")
}

func TestHTML_Table(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeTable, Header: true, Rows: [][]string{{"Name"}, {"Ada"}}},
	}
	doc := HTML(nodes, nil, "")
	assert.Contains(t, doc, "<th>Name</th>")
	assert.Contains(t, doc, "<td>Ada</td>")
}

func TestHTML_RawAndFallback(t *testing.T) {
	nodes := []models.Node{
		{Type: models.NodeRawHTML, HTML: "<hr/>"},
		{Type: "mystery", Text: "fallback text"},
		{Type: models.NodeParagraph, Text: "after", PageBreakAfter: true},
	}
	doc := HTML(nodes, nil, "")
	assert.Contains(t, doc, "<hr/>")
	assert.Contains(t, doc, "<p>fallback text</p>")
	assert.Contains(t, doc, "<div class='page-break'></div>")
}
