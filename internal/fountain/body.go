package fountain

import (
	"log/slog"
	"regexp"
	"strings"
)

// Line shapes recognized by the body classifier, in the order they are
// tried. First match wins; later rules are never consulted for that line.
var (
	twoSpaceRe      = regexp.MustCompile(`^\s{2}$`)
	commentCloseRe  = regexp.MustCompile(`\*/\s*$`)
	pageBreakRe     = regexp.MustCompile(`^={3,}\s*$`)
	synopsisMarkRe  = regexp.MustCompile(`^\s*=`)
	noteRe          = regexp.MustCompile(`^\s*\[{2}\s*[^\]\n]+\s*\]{2}\s*$`)
	sectionMarkRe   = regexp.MustCompile(`^\s*#+`)
	sceneHeadingRe  = regexp.MustCompile(`(?i)^(INT|EXT|EST|(I|INT)\.?/(E|EXT)\.?)[.\-\s].+$`)
	sceneNumberRe   = regexp.MustCompile(`#([^\n#]*?)#\s*$`)
	suffixTransRe   = regexp.MustCompile(`^[^a-z]*TO:$`)
	characterCueRe  = regexp.MustCompile(`^[^a-z]+(\(cont'd\))?$`)
	dualMarkerRe    = regexp.MustCompile(`\^\s*$`)
	dualStripRe     = regexp.MustCompile(`\s*\^\s*$`)
	parentheticalRe = regexp.MustCompile(`^\s*\(`)
)

// stockTransitions are trimmed lines always classified as transitions.
var stockTransitions = map[string]bool{
	"FADE OUT.":      true,
	"CUT TO BLACK.":  true,
	"FADE TO BLACK.": true,
}

// classifier holds the cross-line state threaded through a single body scan.
type classifier struct {
	elements []*Element

	blankRun    int  // consecutive blank lines before the current line
	inDialogue  bool // a character cue is still open for continuation
	commentOpen bool // inside a multi-line boneyard block
	commentText string

	log *slog.Logger
}

// parseBody classifies body text line by line. The input carries a leading
// blank-line separator so heuristics gated on a preceding blank line can
// fire for the first content line.
func parseBody(body string, log *slog.Logger) []*Element {
	c := &classifier{log: log}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		c.classify(line, lines, i)
	}
	return c.elements
}

func (c *classifier) append(el *Element) {
	c.elements = append(c.elements, el)
}

func (c *classifier) last() *Element {
	if len(c.elements) == 0 {
		return nil
	}
	return c.elements[len(c.elements)-1]
}

// classify applies the ordered rule chain to one line.
func (c *classifier) classify(line string, lines []string, index int) {
	// Lyrics. Adjacent lyric runs separated by blank lines get a single
	// blank lyric line between them so the stanza break survives.
	if strings.HasPrefix(line, "~") {
		if prev := c.last(); prev != nil && prev.Kind == KindLyrics && c.blankRun > 0 {
			c.append(&Element{Kind: KindLyrics, Text: " "})
		}
		c.append(&Element{Kind: KindLyrics, Text: line})
		c.blankRun = 0
		return
	}

	// Forced action.
	if strings.HasPrefix(line, "!") {
		c.append(&Element{Kind: KindAction, Text: line[1:]})
		c.blankRun = 0
		return
	}

	// Forced character cue.
	if strings.HasPrefix(line, "@") {
		c.append(&Element{Kind: KindCharacter, Text: line})
		c.blankRun = 0
		c.inDialogue = true
		return
	}

	// A line of exactly two whitespace characters keeps a dialogue block
	// open across what would otherwise be a break.
	if twoSpaceRe.MatchString(line) {
		c.blankRun = 0
		if c.inDialogue {
			if prev := c.last(); prev != nil && prev.Kind == KindDialogue {
				prev.Text += "\n" + line
			} else {
				c.append(&Element{Kind: KindDialogue, Text: line})
			}
		} else {
			c.append(&Element{Kind: KindAction, Text: line})
		}
		return
	}

	if line == "" && !c.commentOpen {
		c.inDialogue = false
		c.blankRun++
		return
	}

	// Boneyard open. The single-line form closes immediately.
	if strings.HasPrefix(line, "/*") {
		if commentCloseRe.MatchString(line) {
			text := strings.ReplaceAll(line, "/*", "")
			text = strings.ReplaceAll(text, "*/", "")
			c.append(&Element{Kind: KindBoneyard, Text: text})
			c.blankRun = 0
		} else {
			c.commentOpen = true
			c.commentText += "\n"
		}
		return
	}

	// Boneyard close: emit the accumulated block. Content preceding the
	// closing marker still belongs to the comment.
	if commentCloseRe.MatchString(line) {
		remnant := strings.TrimSpace(strings.ReplaceAll(line, "*/", ""))
		if remnant != "" {
			c.commentText += remnant
		}
		c.append(&Element{Kind: KindBoneyard, Text: c.commentText})
		c.commentText = ""
		c.commentOpen = false
		c.blankRun = 0
		return
	}

	if c.commentOpen {
		c.commentText += line + "\n"
		return
	}

	// Page break. No text is retained; the estimator resets on it.
	if pageBreakRe.MatchString(line) {
		c.append(&Element{Kind: KindPageBreak})
		c.blankRun = 0
		return
	}

	// Synopsis: a single = marker that is not a page break.
	if trimmed := strings.TrimSpace(line); trimmed != "" && trimmed[0] == '=' {
		loc := synopsisMarkRe.FindStringIndex(line)
		c.append(&Element{Kind: KindSynopsis, Text: line[loc[1]:]})
		c.blankRun = 0
		return
	}

	// Inline note, only recognized after at least one blank line.
	if c.blankRun > 0 && noteRe.MatchString(line) {
		text := strings.ReplaceAll(line, "[[", "")
		text = strings.ReplaceAll(text, "]]", "")
		c.append(&Element{Kind: KindComment, Text: strings.TrimSpace(text)})
		c.blankRun = 0
		return
	}

	// Section heading: depth is the run of # markers.
	if trimmed := strings.TrimSpace(line); trimmed != "" && trimmed[0] == '#' {
		c.blankRun = 0
		mark := sectionMarkRe.FindString(line)
		text := line[len(mark):]
		if text == "" {
			c.log.Warn("section heading without text, skipping", "line", index)
			return
		}
		c.append(&Element{
			Kind:         KindSectionHeading,
			Text:         text,
			SectionDepth: strings.Count(mark, "#"),
		})
		return
	}

	// Forced scene heading. A second period escapes the marker.
	if len(line) > 1 && line[0] == '.' && line[1] != '.' {
		c.blankRun = 0
		el := &Element{Kind: KindSceneHeading}
		if m := sceneNumberRe.FindStringSubmatchIndex(line); m != nil {
			el.SceneNumber = line[m[2]:m[3]]
			el.Text = strings.TrimSpace(line[1:m[0]])
		} else {
			el.Text = strings.TrimSpace(line[1:])
		}
		c.append(el)
		return
	}

	// Implicit scene heading, only after a blank line.
	if c.blankRun > 0 && sceneHeadingRe.MatchString(line) {
		c.blankRun = 0
		el := &Element{Kind: KindSceneHeading}
		if m := sceneNumberRe.FindStringSubmatchIndex(line); m != nil {
			el.SceneNumber = line[m[2]:m[3]]
			el.Text = strings.TrimSpace(line[:m[0]])
		} else {
			el.Text = line
		}
		c.append(el)
		return
	}

	// Transition by suffix: uppercase line ending in TO:.
	if suffixTransRe.MatchString(line) {
		c.blankRun = 0
		c.append(&Element{Kind: KindTransition, Text: line})
		return
	}

	// Transition by stock phrase.
	if stockTransitions[strings.TrimSpace(line)] {
		c.blankRun = 0
		c.append(&Element{Kind: KindTransition, Text: line})
		return
	}

	// Forced transition, or centered action when the line closes with <.
	if len(line) > 0 && line[0] == '>' {
		c.blankRun = 0
		if len(line) > 1 && strings.HasSuffix(line, "<") {
			c.append(&Element{
				Kind:     KindAction,
				Text:     strings.TrimSpace(line[1 : len(line)-1]),
				Centered: true,
			})
		} else {
			c.append(&Element{Kind: KindTransition, Text: strings.TrimSpace(line[1:])})
		}
		return
	}

	// Character cue heuristic: an uppercase line after a blank line, with
	// a non-blank line following it.
	if c.blankRun > 0 && characterCueRe.MatchString(line) &&
		index+1 < len(lines) && lines[index+1] != "" {
		c.blankRun = 0
		el := &Element{Kind: KindCharacter, Text: line}
		if dualMarkerRe.MatchString(line) {
			el.DualDialogue = true
			el.Text = dualStripRe.ReplaceAllString(line, "")
			// Retroactively mark the cue this one prints beside.
			for i := len(c.elements) - 1; i >= 0; i-- {
				if c.elements[i].Kind == KindCharacter {
					c.elements[i].DualDialogue = true
					break
				}
			}
		}
		c.append(el)
		c.inDialogue = true
		return
	}

	// Inside a dialogue block: parenthetical or dialogue continuation.
	if c.inDialogue {
		if c.blankRun == 0 && parentheticalRe.MatchString(line) {
			c.append(&Element{Kind: KindParenthetical, Text: line})
			return
		}
		if prev := c.last(); prev != nil && prev.Kind == KindDialogue {
			prev.Text += "\n" + line
		} else {
			c.append(&Element{Kind: KindDialogue, Text: line})
		}
		return
	}

	// Default: continue the previous element, or start a new action. A
	// scene heading cannot span lines, so continuation demotes it.
	if c.blankRun == 0 && len(c.elements) > 0 {
		prev := c.last()
		if prev.Kind == KindSceneHeading {
			prev.Kind = KindAction
		}
		prev.Text += "\n" + line
		return
	}
	c.append(&Element{Kind: KindAction, Text: line})
	c.blankRun = 0
}
