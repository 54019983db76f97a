package release

import (
	"regexp"
	"strings"
)

// CommitTitle is the structured form of a commit message's first line.
// Titles come in a few shapes:
//
//	ARROW-9598: [C++][Parquet] Fix writing nullable structs
//	ARROW-9340 [R] Use CRAN version of decor package
//	[Release] Update versions for 1.0.0
//
// Anything else degrades to a bare summary; parsing never fails.
type CommitTitle struct {
	Project    string   `json:"project,omitempty"`
	Issue      string   `json:"issue,omitempty"`
	Components []string `json:"components,omitempty"`
	Summary    string   `json:"summary"`
}

var titleRE = regexp.MustCompile(
	`^\s*(?:(?P<issue>(?P<project>[A-Z][A-Z0-9]*)-[0-9]+):?\s+)?` +
		`(?P<components>(?:\[[^\[\]]*\]\s*)*)` +
		`(?P<summary>.*)$`)

var componentRE = regexp.MustCompile(`\[([^\[\]]*)\]`)

// ParseCommitTitle parses the first line of a raw commit message. A
// line break truncates the summary: anything after the first newline is
// discarded.
func ParseCommitTitle(message string) CommitTitle {
	line, _, multiline := strings.Cut(message, "\n")
	if !multiline {
		line = strings.TrimSpace(line)
	} else {
		line = strings.TrimLeft(line, " \t")
	}

	m := titleRE.FindStringSubmatch(line)
	if m == nil {
		// the shapes above are all optional, so this only happens for
		// pathological input; keep the text as the summary.
		return CommitTitle{Summary: strings.TrimSpace(line)}
	}

	title := CommitTitle{
		Issue:   m[titleRE.SubexpIndex("issue")],
		Project: m[titleRE.SubexpIndex("project")],
		Summary: m[titleRE.SubexpIndex("summary")],
	}
	if components := m[titleRE.SubexpIndex("components")]; components != "" {
		for _, cm := range componentRE.FindAllStringSubmatch(components, -1) {
			title.Components = append(title.Components, cm[1])
		}
	}
	return title
}
