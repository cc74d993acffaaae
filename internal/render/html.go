// Package render produces styled output from a content structure: a
// standalone HTML document, optionally converted to PDF via wkhtmltopdf.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/papermorph/papermorph/models"
)

// HTML renders a full HTML document from the content structure and style
// profile. An optional title is emitted as a leading h1.
func HTML(nodes []models.Node, profile *models.StyleProfile, title string) string {
	var body []string
	if title != "" {
		body = append(body, renderHeading(title, 1))
	}

	for _, node := range nodes {
		switch strings.ToLower(node.Type) {
		case models.NodeHeading, "title":
			level := node.Level
			if level == 0 {
				level = 1
			}
			body = append(body, renderHeading(node.Text, level))

		case models.NodeParagraph, "p", "text":
			if len(node.Runs) > 0 {
				body = append(body, renderRuns(node.Runs))
			} else {
				body = append(body, renderParagraph(node.Text))
			}

		case models.NodeList:
			body = append(body, renderList(node.Items, node.Ordered))

		case models.NodeTable:
			body = append(body, renderTable(node.Rows, node.Header))

		case models.NodeRawHTML:
			// Inserted as-is.
			body = append(body, node.HTML)

		default:
			body = append(body, renderParagraph(node.Text))
		}

		if node.PageBreakAfter {
			body = append(body, "<div class='page-break'></div>")
		}
	}

	var doc strings.Builder
	doc.WriteString("<!doctype html><html><head><meta charset='utf-8'/>")
	doc.WriteString(buildCSS(profile))
	doc.WriteString("</head><body>")
	doc.WriteString("<div class='document'>")
	doc.WriteString(strings.Join(body, "\n"))
	doc.WriteString("</div></body></html>")
	return doc.String()
}

// buildCSS assembles the print-oriented stylesheet, overriding the body font
// with the profile's dominant font when one is known.
func buildCSS(profile *models.StyleProfile) string {
	lines := []string{
		"@page { size: A4; margin: 24mm 18mm 24mm 18mm; }",
		"@media print { html, body { height: 100%; } }",
		"body { font-family: system-ui, -apple-system, 'Segoe UI', Roboto, 'Helvetica Neue', Arial; color: #111; line-height:1.45; }",
		"div.document { max-width: 800px; margin: 0 auto; }",
		"p { margin: 8px 0; font-size: 12pt; }",
		"h1,h2,h3 { margin: 14px 0 8px; font-weight:700; }",
		".page-break { page-break-after: always; break-after: page; }",
		"h1 { page-break-inside: avoid; }",
		"table { page-break-inside: avoid; }",
		"img { max-width: 100%; height: auto; }",
		"table{border-collapse:collapse;width:100%;margin:10px 0} table th, table td{border:1px solid #ddd;padding:8px;text-align:left;}",
		"ul, ol { margin: 6px 0 6px 24px; }",
	}

	if top := profile.TopFont(); top != "" {
		lines = append(lines, fmt.Sprintf("body { font-family: '%s', sans-serif; }", top))
	}

	return "<style>\n" + strings.Join(lines, "\n") + "\n</style>"
}

func escape(s string) string {
	return html.EscapeString(s)
}

func renderParagraph(text string) string {
	return "<p>" + escape(text) + "</p>"
}

func renderRuns(runs []models.Run) string {
	var out strings.Builder
	out.WriteString("<p>")
	for _, r := range runs {
		text := escape(r.Text)
		switch {
		case r.Bold && r.Italic:
			out.WriteString("<strong><em>" + text + "</em></strong>")
		case r.Bold:
			out.WriteString("<strong>" + text + "</strong>")
		case r.Italic:
			out.WriteString("<em>" + text + "</em>")
		default:
			out.WriteString(text)
		}
	}
	out.WriteString("</p>")
	return out.String()
}

func renderHeading(text string, level int) string {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return fmt.Sprintf("<h%d>%s</h%d>", level, escape(text), level)
}

func renderList(items []string, ordered bool) string {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var out strings.Builder
	out.WriteString("<" + tag + ">")
	for _, it := range items {
		out.WriteString("<li>" + escape(it) + "</li>")
	}
	out.WriteString("</" + tag + ">")
	return out.String()
}

func renderTable(rows [][]string, header bool) string {
	var out strings.Builder
	out.WriteString("<table>")
	for i, row := range rows {
		out.WriteString("<tr>")
		for _, cell := range row {
			if i == 0 && header {
				out.WriteString("<th>" + escape(cell) + "</th>")
			} else {
				out.WriteString("<td>" + escape(cell) + "</td>")
			}
		}
		out.WriteString("</tr>")
	}
	out.WriteString("</table>")
	return out.String()
}
