package fountain

import (
	"regexp"
	"strings"
)

// Title-page line shapes. A directive announces a key whose value lines
// follow; an inline line carries key and value together. Keys may not
// contain a colon.
var (
	inlineRe    = regexp.MustCompile(`^([^\t\s][^:]+):\s*([^\t\s].*)$`)
	directiveRe = regexp.MustCompile(`^([^\t\s][^:]+):[\t\s]*$`)
)

// parseTitlePage scans the block preceding the first blank line and returns
// the ordered title-page entries. It returns nil when the block contains no
// directive or inline key line at all, in which case the block is not a
// title page and the caller reinterprets it as body content.
func parseTitlePage(top string) []TitleEntry {
	var (
		entries  []TitleEntry
		found    bool
		openKey  string
		openVals []string
	)

	flush := func() {
		if openKey != "" {
			entries = append(entries, TitleEntry{Key: openKey, Values: openVals})
			openKey = ""
			openVals = nil
		}
	}

	for _, line := range strings.Split(top, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case directiveRe.MatchString(line):
			found = true
			flush()
			m := directiveRe.FindStringSubmatch(line)
			openKey = normalizeKey(m[1])
		case inlineRe.MatchString(line):
			found = true
			flush()
			m := inlineRe.FindStringSubmatch(line)
			entries = append(entries, TitleEntry{
				Key:    normalizeKey(m[1]),
				Values: []string{m[2]},
			})
		case found && openKey != "":
			openVals = append(openVals, strings.TrimSpace(line))
		}
	}
	flush()

	if !found {
		return nil
	}
	return entries
}

// normalizeKey lower-cases a title-page key and folds "author" into
// "authors" so downstream consumers see one spelling.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	if key == "author" {
		key = "authors"
	}
	return key
}
