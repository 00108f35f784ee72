package report

import (
	"strings"
	"testing"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
)

func sampleDoc() *fountain.Document {
	return &fountain.Document{
		TitlePage: []fountain.TitleEntry{
			{Key: "title", Values: []string{"Big Fish"}},
			{Key: "authors", Values: []string{"John August"}},
		},
		Elements: []*fountain.Element{
			{Kind: fountain.KindSceneHeading, Text: "INT. ROOM - DAY"},
			{Kind: fountain.KindAction, Text: "A man waits."},
			{Kind: fountain.KindCharacter, Text: "BOB"},
			{Kind: fountain.KindDialogue, Text: "Any minute now."},
			{Kind: fountain.KindBoneyard, Text: "old draft text"},
		},
	}
}

func TestBuild_Summary(t *testing.T) {
	r := Build(sampleDoc(), 3)

	if r.Title != "Big Fish" {
		t.Errorf("expected title %q, got %q", "Big Fish", r.Title)
	}
	if len(r.Authors) != 1 || r.Authors[0] != "John August" {
		t.Errorf("unexpected authors %v", r.Authors)
	}
	if r.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", r.Pages)
	}
	if len(r.Scenes) != 1 || r.Scenes[0] != "INT. ROOM - DAY" {
		t.Errorf("unexpected scenes %v", r.Scenes)
	}
	if r.Elements != 5 {
		t.Errorf("expected 5 elements, got %d", r.Elements)
	}
	// Boneyard words are excluded: 4 + 3 + 1 + 3 = 11.
	if r.Words != 11 {
		t.Errorf("expected 11 words, got %d", r.Words)
	}
	if r.Counts[fountain.KindDialogue] != 1 {
		t.Errorf("expected 1 dialogue element, got %d", r.Counts[fountain.KindDialogue])
	}
}

func TestMarkdown_ContainsSummaryAndScenes(t *testing.T) {
	md := Build(sampleDoc(), 3).Markdown()

	for _, want := range []string{
		"# Big Fish",
		"by John August",
		"- Estimated pages: 3",
		"| Scene Heading | 1 |",
		"1. INT. ROOM - DAY",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_UntitledFallback(t *testing.T) {
	md := Build(&fountain.Document{}, 0).Markdown()
	if !strings.Contains(md, "# Untitled screenplay") {
		t.Errorf("expected fallback title, got:\n%s", md)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(Build(sampleDoc(), 3).Markdown())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>Big Fish</h1>") {
		t.Errorf("expected rendered heading, got:\n%s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected rendered breakdown table, got:\n%s", html)
	}
}
