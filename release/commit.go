package release

import (
	"fmt"

	"github.com/quiverhq/quiver/model"
)

// Commit pairs a raw version-control log entry with its parsed title
// and a web URL.
type Commit struct {
	Hexsha  string      `json:"hexsha"`
	Message string      `json:"message"`
	Title   CommitTitle `json:"title"`

	urlTemplate string
}

// NewCommit wraps a log entry. urlTemplate is a printf-style template
// taking the hexsha, like "https://github.com/apache/arrow/commit/%s".
func NewCommit(c *model.Commit, urlTemplate string) Commit {
	message := c.Message()
	return Commit{
		Hexsha:      c.ID,
		Message:     message,
		Title:       ParseCommitTitle(message),
		urlTemplate: urlTemplate,
	}
}

func (c Commit) URL() string {
	if c.urlTemplate == "" {
		return ""
	}
	return fmt.Sprintf(c.urlTemplate, c.Hexsha)
}

func (c Commit) ShortSHA() string {
	if len(c.Hexsha) < 8 {
		return c.Hexsha
	}
	return c.Hexsha[:8]
}
