package paginate

import (
	"strings"
	"testing"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
)

func actionLines(n int) []*fountain.Element {
	els := make([]*fountain.Element, 0, n)
	for i := 0; i < n; i++ {
		els = append(els, &fountain.Element{Kind: fountain.KindAction, Text: "word"})
	}
	return els
}

func TestCount_FiftyFiveLinesIsOnePage(t *testing.T) {
	// 28 one-line actions separated by 27 blank lines = 55 display lines.
	doc := &fountain.Document{Elements: actionLines(28)}
	if got := Count(doc, DefaultOptions()); got != 1 {
		t.Errorf("expected 1 page, got %d", got)
	}
}

func TestCount_FiftySixthLineRollsToSecondPage(t *testing.T) {
	// One more action adds a separator plus a text line, crossing 55.
	doc := &fountain.Document{Elements: actionLines(29)}
	if got := Count(doc, DefaultOptions()); got != 1 {
		t.Errorf("expected 1 full page and a partial remainder, got %d", got)
	}

	// A partial trailing page below the threshold is not counted, so pad
	// until a second full page is reached.
	doc = &fountain.Document{Elements: actionLines(55)}
	if got := Count(doc, DefaultOptions()); got != 1 {
		t.Errorf("expected 1 page at 109 lines, got %d", got)
	}
	doc = &fountain.Document{Elements: actionLines(56)}
	if got := Count(doc, DefaultOptions()); got != 2 {
		t.Errorf("expected 2 pages at 111 lines, got %d", got)
	}
}

func TestCount_PageBreakAlwaysIncrementsAndResets(t *testing.T) {
	doc := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindAction, Text: "before"},
		{Kind: fountain.KindPageBreak},
		{Kind: fountain.KindAction, Text: "after"},
	}}
	withBreak := Count(doc, DefaultOptions())

	doc = &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindAction, Text: "before"},
		{Kind: fountain.KindAction, Text: "after"},
	}}
	withoutBreak := Count(doc, DefaultOptions())

	if withBreak != withoutBreak+1 {
		t.Errorf("expected page break to add exactly one page: %d vs %d", withBreak, withoutBreak)
	}
}

func TestCount_PageBreakDoesNotCarryLines(t *testing.T) {
	// 53 lines, a break, then 53 more: neither side reaches 55 on its own,
	// so only the break's own page is counted.
	els := actionLines(27)
	els = append(els, &fountain.Element{Kind: fountain.KindPageBreak})
	els = append(els, actionLines(27)...)
	doc := &fountain.Document{Elements: els}

	if got := Count(doc, DefaultOptions()); got != 1 {
		t.Errorf("expected 1 page, got %d", got)
	}
}

func TestCount_NoBreakPairs(t *testing.T) {
	// Character followed by dialogue prints without a separator line.
	noBreak := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindCharacter, Text: "BOB"},
		{Kind: fountain.KindDialogue, Text: "Hi."},
	}}
	// Character followed by action does get the separator.
	withBreak := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindCharacter, Text: "BOB"},
		{Kind: fountain.KindAction, Text: "He waves."},
	}}

	opts := Options{LinesPerPage: 3, CharsPerInch: 12}
	if got := Count(noBreak, opts); got != 0 {
		t.Errorf("expected 2 lines (no page yet) for no-break pair, got %d pages", got)
	}
	if got := Count(withBreak, opts); got != 1 {
		t.Errorf("expected separator line to fill the page, got %d pages", got)
	}
}

func TestCount_UnknownKindFallsBackToActionWidth(t *testing.T) {
	// Synopsis has no width entry; at the action width (72 chars) this
	// text wraps the same as an action element would.
	text := "a reasonably long synopsis line that still fits on one printed line"
	synopsis := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindSynopsis, Text: text},
	}}
	action := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindAction, Text: text},
	}}

	opts := Options{LinesPerPage: 1, CharsPerInch: 12}
	if got, want := Count(synopsis, opts), Count(action, opts); got != want {
		t.Errorf("expected synopsis to paginate like action: %d vs %d", got, want)
	}
}

func TestCount_DialogueWrapsNarrower(t *testing.T) {
	// 3.3in * 12cpi = 39 chars for dialogue vs 72 for action.
	text := strings.Repeat("all work and no play makes jack a dull boy ", 3)
	dialogue := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindDialogue, Text: text},
	}}
	action := &fountain.Document{Elements: []*fountain.Element{
		{Kind: fountain.KindAction, Text: text},
	}}

	opts := Options{LinesPerPage: 2, CharsPerInch: 12}
	if got, want := Count(dialogue, opts), Count(action, opts); got <= want {
		t.Errorf("expected dialogue to take more pages than action: %d vs %d", got, want)
	}
}

func TestCount_ZeroOptionsUseDefaults(t *testing.T) {
	doc := &fountain.Document{Elements: actionLines(28)}
	if got := Count(doc, Options{}); got != 1 {
		t.Errorf("expected defaults to apply, got %d pages", got)
	}
}

func TestCount_EmptyDocument(t *testing.T) {
	if got := Count(&fountain.Document{}, DefaultOptions()); got != 0 {
		t.Errorf("expected 0 pages for empty document, got %d", got)
	}
}
