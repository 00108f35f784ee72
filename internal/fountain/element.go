package fountain

// Kind classifies a single screenplay element.
type Kind string

const (
	KindAction         Kind = "Action"
	KindDialogue       Kind = "Dialogue"
	KindCharacter      Kind = "Character"
	KindParenthetical  Kind = "Parenthetical"
	KindSceneHeading   Kind = "Scene Heading"
	KindTransition     Kind = "Transition"
	KindSectionHeading Kind = "Section Heading"
	KindSynopsis       Kind = "Synopsis"
	KindComment        Kind = "Comment"
	KindLyrics         Kind = "Lyrics"
	KindBoneyard       Kind = "Boneyard"
	KindPageBreak      Kind = "Page Break"
)

// Element is one classified unit of screenplay content. Continuation lines
// are appended to Text joined by newlines; an element is never split or
// reordered once emitted.
type Element struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	// Centered is set for action wrapped in >...<.
	Centered bool `json:"centered,omitempty"`
	// SceneNumber holds the value of a trailing #...# marker on a scene heading.
	SceneNumber string `json:"scene_number,omitempty"`
	// DualDialogue marks a character cue intended to print side by side with
	// the preceding one.
	DualDialogue bool `json:"dual_dialogue,omitempty"`
	// SectionDepth is the number of # markers on a section heading (>= 1).
	SectionDepth int `json:"section_depth,omitempty"`
}

// TitleEntry maps one lower-cased title-page key to its value lines.
// Repeated keys stay separate entries, in source order.
type TitleEntry struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Document is the parsed screenplay: the ordered element sequence plus the
// title-page entries. It is not mutated after Parse returns.
type Document struct {
	Elements  []*Element   `json:"elements"`
	TitlePage []TitleEntry `json:"title_page"`
}
