// Package paginate estimates how many printed pages a parsed screenplay
// occupies under the standard one-page-per-55-lines convention, wrapping
// each element at the column width of its kind.
package paginate

import (
	"math"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
)

// Options configures the page estimate.
type Options struct {
	LinesPerPage int     // display lines per printed page
	CharsPerInch float64 // monospace character pitch
}

// DefaultOptions returns the standard screenplay settings: 55 lines per
// page at 12 characters per inch.
func DefaultOptions() Options {
	return Options{
		LinesPerPage: 55,
		CharsPerInch: 12,
	}
}

// columnWidths maps element kinds to their printed column width in inches.
// Kinds absent from the table use the action width.
var columnWidths = map[fountain.Kind]float64{
	fountain.KindAction:        6.0,
	fountain.KindDialogue:      3.3,
	fountain.KindCharacter:     3.3,
	fountain.KindParenthetical: 2.0,
	fountain.KindTransition:    1.5,
}

// noBreakPairs are adjacent kind pairs printed without a blank separator
// line between them.
var noBreakPairs = map[[2]fountain.Kind]bool{
	{fountain.KindCharacter, fountain.KindDialogue}:      true,
	{fountain.KindCharacter, fountain.KindParenthetical}: true,
	{fountain.KindDialogue, fountain.KindParenthetical}:  true,
	{fountain.KindParenthetical, fountain.KindDialogue}:  true,
}

// Count estimates the page count of a parsed screenplay. Zero-value option
// fields fall back to the defaults.
func Count(doc *fountain.Document, opts Options) int {
	if opts.LinesPerPage <= 0 {
		opts.LinesPerPage = 55
	}
	if opts.CharsPerInch <= 0 {
		opts.CharsPerInch = 12
	}

	var (
		pages       int
		linesOnPage int
		prevKind    fountain.Kind
	)
	for _, el := range doc.Elements {
		if el.Kind == fountain.KindPageBreak {
			pages++
			linesOnPage = 0
			prevKind = ""
			continue
		}

		kind := el.Kind
		inches, ok := columnWidths[kind]
		if !ok {
			kind = fountain.KindAction
			inches = columnWidths[kind]
		}
		width := int(math.Floor(inches * opts.CharsPerInch))
		linesOnPage += len(Wrap(el.Text, width))

		if prevKind != "" && !noBreakPairs[[2]fountain.Kind{prevKind, kind}] {
			linesOnPage++
		}
		// A single element may straddle a page boundary, so roll over
		// incrementally instead of once at the end.
		for linesOnPage >= opts.LinesPerPage {
			pages++
			linesOnPage -= opts.LinesPerPage
		}
		prevKind = kind
	}
	return pages
}
