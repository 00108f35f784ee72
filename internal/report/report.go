// Package report builds a human-readable summary of a parsed screenplay:
// title-page data, element counts, the scene list and the estimated page
// count. The summary is emitted as Markdown and can be rendered to HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
)

// Report is the derived summary of one screenplay.
type Report struct {
	Title    string                `json:"title"`
	Authors  []string              `json:"authors,omitempty"`
	Pages    int                   `json:"pages"`
	Scenes   []string              `json:"scenes"`
	Words    int                   `json:"words"`
	Elements int                   `json:"elements"`
	Counts   map[fountain.Kind]int `json:"counts"`
}

// uncountedKinds excludes author-only content from the word count.
var uncountedKinds = map[fountain.Kind]bool{
	fountain.KindBoneyard:  true,
	fountain.KindComment:   true,
	fountain.KindPageBreak: true,
}

// Build derives a Report from a parsed document and its estimated pages.
func Build(doc *fountain.Document, pages int) Report {
	r := Report{
		Pages:    pages,
		Elements: len(doc.Elements),
		Counts:   make(map[fountain.Kind]int),
	}

	for _, entry := range doc.TitlePage {
		switch entry.Key {
		case "title":
			if r.Title == "" && len(entry.Values) > 0 {
				r.Title = strings.Join(entry.Values, " ")
			}
		case "authors":
			r.Authors = append(r.Authors, entry.Values...)
		}
	}

	for _, el := range doc.Elements {
		r.Counts[el.Kind]++
		if el.Kind == fountain.KindSceneHeading {
			r.Scenes = append(r.Scenes, el.Text)
		}
		if !uncountedKinds[el.Kind] {
			r.Words += len(strings.Fields(el.Text))
		}
	}
	return r
}

// kindOrder fixes the section order of the Markdown breakdown table.
var kindOrder = []fountain.Kind{
	fountain.KindSceneHeading,
	fountain.KindAction,
	fountain.KindCharacter,
	fountain.KindDialogue,
	fountain.KindParenthetical,
	fountain.KindTransition,
	fountain.KindLyrics,
	fountain.KindSectionHeading,
	fountain.KindSynopsis,
	fountain.KindComment,
	fountain.KindBoneyard,
	fountain.KindPageBreak,
}

// Markdown renders the report as a Markdown document.
func (r Report) Markdown() string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Untitled screenplay"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(r.Authors) > 0 {
		fmt.Fprintf(&b, "by %s\n\n", strings.Join(r.Authors, ", "))
	}

	fmt.Fprintf(&b, "- Estimated pages: %d\n", r.Pages)
	fmt.Fprintf(&b, "- Scenes: %d\n", len(r.Scenes))
	fmt.Fprintf(&b, "- Words: %d\n", r.Words)
	fmt.Fprintf(&b, "- Elements: %d\n\n", r.Elements)

	b.WriteString("## Breakdown\n\n")
	b.WriteString("| Element | Count |\n|---|---|\n")
	for _, kind := range kindOrder {
		if n := r.Counts[kind]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", kind, n)
		}
	}

	if len(r.Scenes) > 0 {
		b.WriteString("\n## Scenes\n\n")
		for i, scene := range r.Scenes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, scene)
		}
	}
	return b.String()
}
