// Package caption recognizes figure, image, chart and diagram caption lines.
package caption

import "regexp"

// Prefix is prepended to every line recognized as a caption.
const Prefix = "[Caption] "

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// patterns are anchored at the start of the line and case-sensitive.
// Checked in order; the first match wins.
var patterns = []pattern{
	{kind: "figure", re: regexp.MustCompile(`^Figure\s+\d+(\.\d+)?[:\-]?`)},
	{kind: "image", re: regexp.MustCompile(`^Image\s+\d+[:\-]?`)},
	{kind: "chart", re: regexp.MustCompile(`^Chart\s+\d+[:\-]?`)},
	{kind: "diagram", re: regexp.MustCompile(`^Diagram\s+\d+[:\-]?`)},
	{kind: "fig", re: regexp.MustCompile(`^Fig\.?\s+\d+.*`)},
}

// match returns the name of the first caption pattern matching line.
func match(line string) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(line) {
			return p.kind, true
		}
	}
	return "", false
}

// IsCaption reports whether line starts like a caption.
func IsCaption(line string) bool {
	_, ok := match(line)
	return ok
}

// Classify returns line with Prefix prepended when it is a caption, otherwise
// line unchanged. The boolean reports whether the prefix was added.
func Classify(line string) (string, bool) {
	if IsCaption(line) {
		return Prefix + line, true
	}
	return line, false
}
