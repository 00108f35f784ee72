// Package fountain parses screenplays written in the Fountain plain-text
// markup into an ordered sequence of typed elements plus a title-page
// key/value block. Parsing is best effort: malformed lines degrade to
// action or continuation text rather than failing.
package fountain

import (
	"log/slog"
	"strings"
)

// Parse parses Fountain source text into a Document using slog.Default for
// soft warnings.
func Parse(source string) *Document {
	return ParseWithLogger(source, slog.Default())
}

// ParseWithLogger parses Fountain source text into a Document. The title
// block is everything before the first blank line; the rest is the body.
// When the top block turns out not to be a title page it is reinterpreted
// as body content.
func ParseWithLogger(source string, log *slog.Logger) *Document {
	if log == nil {
		log = slog.Default()
	}

	contents := strings.ReplaceAll(source, "\r\n", "\n")
	contents = strings.TrimLeft(contents, " \t\n\r\f\v") + "\n\n"

	first := strings.Index(contents, "\n\n")
	title := parseTitlePage(contents[:first])

	// The body keeps a leading blank-line separator so rules gated on a
	// preceding blank line can fire for the first content line.
	var body string
	if title == nil {
		body = "\n\n" + contents
	} else {
		body = "\n" + contents[first:]
	}

	return &Document{
		Elements:  parseBody(body, log),
		TitlePage: title,
	}
}
