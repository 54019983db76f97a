package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/quiverhq/quiver/model"
)

type Mock struct {
	t        time.Time
	tags     []string
	branches []string
	commits  map[string][]*model.Commit
}

func NewMock() *Mock {
	return &Mock{
		t:       time.Now(),
		commits: make(map[string][]*model.Commit),
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetBranches(branches ...string) *Mock {
	m.branches = branches
	return m
}

// SetCommits registers the log entries returned for a rev query, for
// example "apache-arrow-0.17.0..maint-0.17.x". Entries are expected
// newest-first, matching git log traversal order.
func (m *Mock) SetCommits(query string, commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits[query] = finalCommits
	return m
}

func (m *Mock) Fetch(ctx context.Context, upstream, ref string) error {
	return nil
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	commits, ok := m.commits[query]
	if !ok {
		return nil, NotFoundError{Ref: query}
	}
	return commits, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	var tags []string
	for _, t := range m.tags {
		if globMatches(t, query) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	for _, cand := range candidates {
		for _, b := range m.branches {
			if b == cand {
				return b, nil
			}
		}
	}
	return "", NotFoundError{Ref: strings.Join(candidates, ", ")}
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	if len(m.branches) == 0 {
		return "", NotFoundError{Ref: "HEAD"}
	}
	return m.branches[0], nil
}

func globMatches(s string, glob string) bool {
	parts := strings.Split(glob, "*")
	remaining := s
	for {
		if len(parts) == 0 {
			break
		}
		part := parts[0]
		parts = parts[1:]

		if !strings.HasPrefix(remaining, part) {
			return false
		}
		remaining = strings.TrimPrefix(remaining, part)
	}
	if len(glob) > 0 && glob[len(glob)-1] == '*' {
		return true
	}
	return remaining == ""
}
