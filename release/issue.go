package release

import (
	"strconv"
	"strings"
)

// Issue is a tracker ticket, identified by a project-prefixed key like
// "ARROW-9598".
type Issue struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Project returns the key's prefix before the first dash.
func (i Issue) Project() (string, error) {
	project, _, err := splitIssueKey(i.Key)
	return project, err
}

// Number returns the key's numeric suffix.
func (i Issue) Number() (int, error) {
	_, number, err := splitIssueKey(i.Key)
	return number, err
}

func splitIssueKey(key string) (string, int, error) {
	project, num, found := strings.Cut(key, "-")
	if !found || project == "" {
		return "", 0, ParseError{Input: key, Reason: "issue key has no project prefix"}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, ParseError{Input: key, Reason: "issue key suffix is not numeric"}
	}
	return project, n, nil
}

// TrackerIssue is the generic record shape returned by the issue
// tracker for one ticket.
type TrackerIssue struct {
	Key    string             `json:"key"`
	Fields TrackerIssueFields `json:"fields"`
}

type TrackerIssueFields struct {
	IssueType TrackerIssueType `json:"issuetype"`
	Summary   string           `json:"summary"`
}

type TrackerIssueType struct {
	Name string `json:"name"`
}

// IssueFromTracker converts a tracker record, failing fast when the
// key or issue type is missing instead of carrying partial records
// forward.
func IssueFromTracker(rec TrackerIssue) (Issue, error) {
	if rec.Key == "" {
		return Issue{}, ParseError{Input: rec.Key, Reason: "tracker record has no key"}
	}
	if rec.Fields.IssueType.Name == "" {
		return Issue{}, ParseError{Input: rec.Key, Reason: "tracker record has no issue type"}
	}
	return Issue{
		Key:     rec.Key,
		Type:    rec.Fields.IssueType.Name,
		Summary: rec.Fields.Summary,
	}, nil
}
