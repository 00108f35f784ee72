package paginate

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily word-wraps text at the given column width and returns the
// display lines. Embedded newlines (continuation lines merged during
// parsing) are wrapped independently and concatenated in order. Words are
// never split: a word longer than the width occupies a line by itself.
// A width below 1 is clamped to 1 rather than allowed to loop forever.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, segment := range strings.Split(text, "\n") {
		lines = append(lines, wrapSegment(segment, width)...)
	}
	return lines
}

// wrapSegment wraps a single newline-free segment. Each word is rendered
// with one trailing space; when that rendering no longer fits, the word
// opens a new line. Trailing whitespace is trimmed from every line.
func wrapSegment(segment string, width int) []string {
	words := strings.Fields(segment)
	if len(words) == 0 {
		return nil
	}

	var (
		lines     []string
		current   strings.Builder
		spaceLeft = width
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(current.String(), " "))
		current.Reset()
	}

	for _, word := range words {
		// Width is measured in characters, not bytes.
		runes := utf8.RuneCountInString(word)
		rendered := runes + 1
		if rendered > spaceLeft {
			if current.Len() > 0 {
				flush()
			}
			spaceLeft = width - runes
		} else {
			spaceLeft -= rendered
		}
		current.WriteString(word)
		current.WriteByte(' ')
	}
	if current.Len() > 0 {
		flush()
	}
	return lines
}
