package models

// Node types understood by the HTML formatter.
const (
	NodeHeading   = "heading"
	NodeParagraph = "paragraph"
	NodeList      = "list"
	NodeTable     = "table"
	NodeRawHTML   = "raw_html"
)

// Run is a fragment of paragraph text with inline styling.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Node is one element of the document content structure. Which fields are
// meaningful depends on Type.
type Node struct {
	Type           string     `json:"type"`
	Level          int        `json:"level,omitempty"`
	Text           string     `json:"text,omitempty"`
	Runs           []Run      `json:"runs,omitempty"`
	Items          []string   `json:"items,omitempty"`
	Ordered        bool       `json:"ordered,omitempty"`
	Rows           [][]string `json:"rows,omitempty"`
	Header         bool       `json:"header,omitempty"`
	HTML           string     `json:"html,omitempty"`
	PageBreakAfter bool       `json:"page_break_after,omitempty"`
}

// IsHeading reports whether the node is a heading or title node.
func (n Node) IsHeading() bool {
	return n.Type == NodeHeading || n.Type == "title"
}
