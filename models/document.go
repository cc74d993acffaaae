package models

// Span is a run of text with uniform font and size, in content order.
type Span struct {
	Page int     `json:"page"`
	Font string  `json:"font"`
	Size float64 `json:"size"`
	Text string  `json:"text"`
}

// PageText holds the plain extracted text of a single page.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}
