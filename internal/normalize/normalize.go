// Package normalize tidies assembled markdown: list markers, broken
// paragraphs, heading spacing and blank-line runs.
package normalize

import (
	"regexp"
	"strings"

	"fjacquet/pdf2md/internal/caption"
)

var (
	bulletMarker   = regexp.MustCompile(`(?m)^[ \t]{0,2}(?:[•‣][ \t]*|[–-][ \t]+)(\S)`)
	orderedMarker  = regexp.MustCompile(`(?m)^([ \t]*)[(\[]?(\d{1,3}|[ivxIVX]{1,4}|[a-zA-Z])[).\]][ \t]+`)
	headingLine    = regexp.MustCompile(`^#{1,6}\s`)
	bulletItem     = regexp.MustCompile(`^[-*]\s+[A-Za-z0-9]`)
	numberedItem   = regexp.MustCompile(`^\d+\.\s+[A-Za-z0-9]`)
	startsUpper    = regexp.MustCompile(`^[A-Z]`)
	acronym        = regexp.MustCompile(`^[A-Z0-9/&]+$`)
	terminalPunct  = regexp.MustCompile(`[.?!:;"”)]$`)
	headingNoSpace = regexp.MustCompile(`(?m)^(#{1,6})([^\s#])`)
	blankRun       = regexp.MustCompile(`\n{3,}`)
)

// shortLineWords is the longest a title-like line can be and still be kept on
// its own line.
const shortLineWords = 4

// Markdown applies every normalization step in order and trims the result.
func Markdown(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = Bullets(text)
	text = OrderedLists(text)
	text = headingNoSpace.ReplaceAllString(text, "$1 $2")
	text = MergeParagraphs(text)
	text = blankRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Bullets rewrites bullet glyphs at the start of a line as "- ".
// A hyphen or en dash only counts as a bullet when followed by whitespace.
func Bullets(text string) string {
	return bulletMarker.ReplaceAllString(text, "- ${1}")
}

// OrderedLists rewrites "1)", "(a)", "ii." and "[3]" style markers as
// "1. ", "a. ", "ii. ", "3. ". Letter markers are lowercased.
func OrderedLists(text string) string {
	return orderedMarker.ReplaceAllStringFunc(text, func(match string) string {
		parts := orderedMarker.FindStringSubmatch(match)
		indent, marker := parts[1], parts[2]
		if marker[0] < '0' || marker[0] > '9' {
			marker = strings.ToLower(marker)
		}
		return indent + marker + ". "
	})
}

// MergeParagraphs joins a line with the next one when the text looks like a
// paragraph broken by the page layout. Headings, list items, captions, short
// title-like lines and lines ending in terminal punctuation keep their break.
func MergeParagraphs(text string) string {
	lines := strings.Split(text, "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	for i, line := range lines {
		if i == len(lines)-1 {
			sb.WriteString(line)
			break
		}
		next := lines[i+1]
		if line == "" || next == "" {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(joinLine(line, next))
	}
	return sb.String()
}

// joinLine returns line followed by either a newline or, when merging, a space.
func joinLine(line, next string) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case headingLine.MatchString(trimmed):
		return line + "\n"
	case strings.HasPrefix(trimmed, caption.Prefix),
		strings.HasPrefix(strings.TrimSpace(next), caption.Prefix):
		return line + "\n"
	case bulletItem.MatchString(trimmed), numberedItem.MatchString(trimmed):
		return trimmed + "\n"
	case isShortTitle(trimmed):
		return line + "\n"
	case !terminalPunct.MatchString(trimmed):
		return trimmed + " "
	}
	return line + "\n"
}

func isShortTitle(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > shortLineWords {
		return false
	}
	if startsUpper.MatchString(words[0]) {
		return true
	}
	for _, w := range words {
		if acronym.MatchString(w) {
			return true
		}
	}
	return false
}
