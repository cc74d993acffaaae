// Package style derives a heuristic style profile from text spans: dominant
// fonts, font-size percentiles, heading thresholds and list conventions.
package style

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/papermorph/papermorph/models"
)

var boldKeywords = []string{"Bold", "Bd", "BOLD", "Black", "Semibold", "SemiBold", "Heavy"}

var italicKeywords = []string{"Italic", "It", "Oblique", "Slanted"}

var bulletCandidates = []string{"•", "-", "–", "—", "*", "·"}

// sampleLimit caps how many spans are inspected for list-marker detection.
const sampleLimit = 200

var (
	bulletLeadRe   = regexp.MustCompile(`^[-*\x{2022}]\s+`)
	numberedLeadRe = regexp.MustCompile(`^\d+\.\s+`)
	letteredLeadRe = regexp.MustCompile(`^[a-zA-Z]\)\s+`)
)

func isBoldFont(font string) bool {
	for _, k := range boldKeywords {
		if strings.Contains(font, k) {
			return true
		}
	}
	return false
}

func isItalicFont(font string) bool {
	for _, k := range italicKeywords {
		if strings.Contains(font, k) {
			return true
		}
	}
	return false
}

// roundSize rounds a raw font size to the nearest integer point. Sizes that
// round to zero or below are treated as unknown.
func roundSize(size float64) int {
	r := int(math.Round(size))
	if r <= 0 {
		return 0
	}
	return r
}

type fontWeightInfo struct {
	count       int
	boldCount   int
	italicCount int
}

// BuildProfile builds a style profile from spans. A nil result means there
// was nothing to profile (no spans).
func BuildProfile(spans []models.Span) *models.StyleProfile {
	if len(spans) == 0 {
		return nil
	}

	fontCounts := map[string]int{}
	var fontOrder []string
	var sizes []int
	weights := map[string]*fontWeightInfo{}
	var samples []models.SampleText

	for _, s := range spans {
		font := s.Font
		if font == "" {
			font = "Unknown"
		}
		if _, seen := fontCounts[font]; !seen {
			fontOrder = append(fontOrder, font)
		}
		fontCounts[font]++

		size := roundSize(s.Size)
		if size > 0 {
			sizes = append(sizes, size)
			w := weights[font]
			if w == nil {
				w = &fontWeightInfo{}
				weights[font] = w
			}
			w.count++
			if isBoldFont(font) {
				w.boldCount++
			}
			if isItalicFont(font) {
				w.italicCount++
			}
		}

		if len(samples) < 30 && strings.TrimSpace(s.Text) != "" {
			samples = append(samples, models.SampleText{
				Font: font,
				Size: size,
				Text: strings.TrimSpace(s.Text),
			})
		}
	}

	fontsTop := topFonts(fontCounts, fontOrder, 8)

	percentiles, havePercentiles := sizePercentiles(sizes)

	sizeMap := map[string]string{}
	var headingRules []models.HeadingRule
	if havePercentiles {
		for _, s := range uniqueSorted(sizes) {
			role := "P"
			switch {
			case s >= percentiles.P90:
				role = "H1"
			case s >= percentiles.P75:
				role = "H2"
			case s >= percentiles.P50:
				role = "H3"
			}
			sizeMap[strconv.Itoa(s)] = role
		}
		headingRules = []models.HeadingRule{
			{Level: 1, MinSize: percentiles.P90},
			{Level: 2, MinSize: percentiles.P75},
			{Level: 3, MinSize: percentiles.P50},
		}
	}

	profile := &models.StyleProfile{
		SizePercentiles: percentiles,
		SizeMap:         sizeMap,
		HeadingRules:    headingRules,
		ListStyle:       detectListStyle(spans),
		SampleTexts:     samples,
	}

	for _, f := range fontsTop {
		stat := models.FontStat{Font: f.name, Count: f.count}
		if w := weights[f.name]; w != nil && w.count > 0 {
			stat.BoldPct = pct(w.boldCount, w.count)
			stat.ItalicPct = pct(w.italicCount, w.count)
		}
		profile.FontsTop = append(profile.FontsTop, stat)
	}

	return profile
}

// InferRole decides the layout role (H1/H2/H3/P) of a single span under the
// given profile.
func InferRole(span models.Span, profile *models.StyleProfile) string {
	size := roundSize(span.Size)
	if size == 0 || profile == nil {
		return "P"
	}
	for _, rule := range profile.HeadingRules {
		if size >= rule.MinSize {
			return fmt.Sprintf("H%d", rule.Level)
		}
	}
	if role, ok := profile.SizeMap[strconv.Itoa(size)]; ok {
		return role
	}
	return "P"
}

func pct(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*1000) / 10
}

type fontCount struct {
	name  string
	count int
}

// topFonts ranks fonts by span count, ties broken by first appearance.
func topFonts(counts map[string]int, order []string, n int) []fontCount {
	ranked := make([]fontCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, fontCount{name: name, count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func uniqueSorted(sizes []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range sizes {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// sizePercentiles computes p90/p75/p50/p25 thresholds over rounded sizes.
// Small samples fall back to max (p90) and the second-largest value (p75),
// so short documents still yield usable heading thresholds.
func sizePercentiles(sizes []int) (models.SizePercentiles, bool) {
	if len(sizes) == 0 {
		return models.SizePercentiles{}, false
	}
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)

	var p models.SizePercentiles
	p.Min = sorted[0]
	p.Max = sorted[len(sorted)-1]

	if len(sorted) >= 100 {
		p.P90 = int(math.Round(quantileExclusive(sorted, 90, 100)))
	} else {
		p.P90 = p.Max
	}
	if len(sorted) >= 4 {
		p.P75 = int(math.Round(quantileExclusive(sorted, 3, 4)))
	} else {
		p.P75 = sorted[maxInt(0, len(sorted)-2)]
	}
	p.P50 = int(math.Round(median(sorted)))
	p.P25 = sorted[maxInt(0, len(sorted)/4)]
	return p, true
}

// quantileExclusive computes the i-th of n-1 exclusive-method cut points over
// sorted data, interpolating between neighbors.
func quantileExclusive(sorted []int, i, n int) float64 {
	ld := len(sorted)
	m := ld + 1
	j := i * m / n
	delta := i*m - j*n
	if j < 1 {
		j = 1
	} else if j > ld-1 {
		j = ld - 1
	}
	return (float64(sorted[j-1])*float64(n-delta) + float64(sorted[j])*float64(delta)) / float64(n)
}

func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// detectListStyle scans span texts for leading bullet characters and numbered
// list markers.
func detectListStyle(spans []models.Span) models.ListStyle {
	bulletCounts := map[string]int{}
	var bulletOrder []string
	numbered := false
	count := 0

	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		count++
		if count > sampleLimit {
			break
		}
		first := string([]rune(text)[0])
		if isBulletChar(first) {
			if bulletCounts[first] == 0 {
				bulletOrder = append(bulletOrder, first)
			}
			bulletCounts[first]++
		}
		if bulletLeadRe.MatchString(text) {
			if bulletCounts[first] == 0 {
				bulletOrder = append(bulletOrder, first)
			}
			bulletCounts[first]++
		}
		if numberedLeadRe.MatchString(text) || letteredLeadRe.MatchString(text) {
			numbered = true
		}
	}

	sort.SliceStable(bulletOrder, func(i, j int) bool {
		return bulletCounts[bulletOrder[i]] > bulletCounts[bulletOrder[j]]
	})
	if len(bulletOrder) > 3 {
		bulletOrder = bulletOrder[:3]
	}

	return models.ListStyle{
		Bullets:     bulletOrder,
		Numbered:    numbered,
		SampleCount: count,
	}
}

func isBulletChar(s string) bool {
	for _, b := range bulletCandidates {
		if s == b {
			return true
		}
	}
	return false
}
