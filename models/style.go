package models

// FontStat summarizes the usage of a single font family in a document.
type FontStat struct {
	Font      string  `json:"font"`
	Count     int     `json:"count"`
	BoldPct   float64 `json:"bold_pct"`
	ItalicPct float64 `json:"italic_pct"`
}

// SizePercentiles describes the distribution of rounded font sizes.
type SizePercentiles struct {
	P90 int `json:"p90"`
	P75 int `json:"p75"`
	P50 int `json:"p50"`
	P25 int `json:"p25"`
	Min int `json:"min"`
	Max int `json:"max"`
}

// HeadingRule maps a heading level to the minimum font size that triggers it.
type HeadingRule struct {
	Level   int `json:"level"`
	MinSize int `json:"min_size"`
}

// ListStyle captures bullet characters and numbering seen in sampled text.
type ListStyle struct {
	Bullets     []string `json:"bullets"`
	Numbered    bool     `json:"numbered"`
	SampleCount int      `json:"sample_count"`
}

// SampleText is a short text excerpt kept for inspection alongside its style.
type SampleText struct {
	Font string `json:"font"`
	Size int    `json:"size"`
	Text string `json:"text"`
}

// StyleProfile is the heuristic style summary derived from a sample PDF.
type StyleProfile struct {
	FontsTop        []FontStat        `json:"fonts_top"`
	SizePercentiles SizePercentiles   `json:"size_percentiles"`
	SizeMap         map[string]string `json:"size_map"`
	HeadingRules    []HeadingRule     `json:"heading_rules"`
	ListStyle       ListStyle         `json:"list_style"`
	SampleTexts     []SampleText      `json:"sample_texts"`
}

// TopFont returns the most frequent font in the profile, or "" if none.
func (p *StyleProfile) TopFont() string {
	if p == nil || len(p.FontsTop) == 0 {
		return ""
	}
	return p.FontsTop[0].Font
}
