package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/quiverhq/quiver/config"
	"github.com/quiverhq/quiver/vcs"
)

// Tracker is the issue tracker surface the release model consumes.
type Tracker interface {
	ProjectVersions(ctx context.Context, project string) ([]Version, error)
	ProjectIssues(ctx context.Context, version Version, project string) ([]TrackerIssue, error)
}

type Kind int

const (
	_ Kind = iota

	KindMajor
	KindMinor
	KindPatch
)

func (k Kind) String() string {
	switch k {
	case KindMajor:
		return "MAJOR"
	case KindMinor:
		return "MINOR"
	case KindPatch:
		return "PATCH"
	case 0:
		return "<INVALID>"
	default:
		return "<UNKNOWN>"
	}
}

// Classify determines the release kind from the version number alone.
// Minor bumps before 1.0 count as majors: the pre-1.0 line had no
// stable API, so every 0.x.0 cut a new main-line release.
func Classify(v Version) Kind {
	if v.Patch > 0 {
		return KindPatch
	}
	if v.Minor == 0 || v.Major == 0 {
		return KindMajor
	}
	return KindMinor
}

// Release is one published or planned version, together with the
// tracker and repository handles needed to enumerate its issues and
// commits. Derived fields are computed on demand from a snapshot of the
// tracker's version list taken at construction.
type Release struct {
	Version Version

	kind    Kind
	cfg     config.Config
	tracker Tracker
	repo    vcs.Interface

	// ascending snapshot of every version the tracker knows
	versions []Version

	issues  map[string]Issue
	commits []Commit
}

// FromTracker looks up a "X.Y.Z" string in the tracker's version list
// and returns the classified release. The version must be known to the
// tracker; otherwise a NotFoundError is returned.
func FromTracker(ctx context.Context, tracker Tracker, repo vcs.Interface, cfg config.Config, version string) (*Release, error) {
	want, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}
	all, err := tracker.ProjectVersions(ctx, cfg.Project)
	if err != nil {
		return nil, err
	}
	SortVersions(all)
	return fromSnapshot(tracker, repo, cfg, all, want)
}

func fromSnapshot(tracker Tracker, repo vcs.Interface, cfg config.Config, all []Version, want Version) (*Release, error) {
	for _, v := range all {
		if v.Equal(want) {
			return &Release{
				Version:  v,
				kind:     Classify(v),
				cfg:      cfg,
				tracker:  tracker,
				repo:     repo,
				versions: all,
			}, nil
		}
	}
	return nil, NotFoundError{Version: want.String()}
}

func (r *Release) Kind() Kind { return r.kind }

// IsReleased reports the tracker's released flag for this exact
// version.
func (r *Release) IsReleased() bool { return r.Version.Released }

// Tag is the release tag name, e.g. "apache-arrow-1.0.0".
func (r *Release) Tag() string { return r.cfg.Tag(r.Version.String()) }

// Branch is the branch this release is cut from: the default branch
// for major releases, a maintenance branch otherwise.
func (r *Release) Branch() string {
	switch r.kind {
	case KindMinor:
		return fmt.Sprintf("maint-%d.x.x", r.Version.Major)
	case KindPatch:
		return fmt.Sprintf("maint-%d.%d.x", r.Version.Major, r.Version.Minor)
	default:
		return r.cfg.DefaultBranch
	}
}

// Previous returns the release for the nearest version strictly less
// than this one. For the oldest known version the error matches
// ErrNoPriorRelease.
func (r *Release) Previous() (*Release, error) {
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].Less(r.Version) {
			return fromSnapshot(r.tracker, r.repo, r.cfg, r.versions, r.versions[i])
		}
	}
	return nil, fmt.Errorf("%w: %s is the oldest known version", ErrNoPriorRelease, r.Version)
}

// Next returns the release for the nearest version strictly greater
// than this one. For the newest known version the error matches
// ErrNoUpcomingRelease.
func (r *Release) Next() (*Release, error) {
	for _, v := range r.versions {
		if r.Version.Less(v) {
			return fromSnapshot(r.tracker, r.repo, r.cfg, r.versions, v)
		}
	}
	return nil, fmt.Errorf("%w: %s is the newest known version", ErrNoUpcomingRelease, r.Version)
}

// Issues maps issue key to Issue for every ticket filed against this
// exact version. The result is memoized.
func (r *Release) Issues(ctx context.Context) (map[string]Issue, error) {
	if r.issues != nil {
		return r.issues, nil
	}
	recs, err := r.tracker.ProjectIssues(ctx, r.Version, r.cfg.Project)
	if err != nil {
		return nil, err
	}
	issues := make(map[string]Issue, len(recs))
	for _, rec := range recs {
		issue, err := IssueFromTracker(rec)
		if err != nil {
			return nil, err
		}
		issues[issue.Key] = issue
	}
	r.issues = issues
	return issues, nil
}

// Commits returns this release's commits in git log traversal order
// (newest first). The result is memoized.
func (r *Release) Commits(ctx context.Context) ([]Commit, error) {
	if r.commits != nil {
		return r.commits, nil
	}
	query, err := r.commitRange(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := r.repo.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	commits := make([]Commit, len(raw))
	for i, c := range raw {
		commits[i] = NewCommit(c, r.cfg.CommitURL)
	}
	r.commits = commits
	return commits, nil
}

// commitRange resolves the rev range holding this release's commits.
// The lower bound is the previous release's tag. The upper bound is
// this release's own tag once it exists; an as-yet-untagged patch is
// cut from the head of its maintenance branch, an untagged major or
// minor from the head of the main line.
func (r *Release) commitRange(ctx context.Context) (string, error) {
	upper := r.Tag()
	tags, err := r.repo.ReadTags(ctx, upper)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		if r.kind == KindPatch {
			upper = r.Branch()
		} else {
			upper = r.cfg.DefaultBranch
		}
	}

	prev, err := r.Previous()
	if err != nil {
		if errors.Is(err, ErrNoPriorRelease) {
			// the very first release spans the whole history
			return upper, nil
		}
		return "", err
	}
	return prev.Tag() + ".." + upper, nil
}

// CommitsToPick plans the cherry-picks for a patch release: every
// main-line commit whose title references an issue resolved in this
// release, oldest first so they apply cleanly in order. When
// excludeAlreadyApplied is set, issues already represented by a commit
// on the maintenance branch are skipped; matching is by issue key, not
// hash, since cherry-picking rewrites hashes.
func (r *Release) CommitsToPick(ctx context.Context, excludeAlreadyApplied bool) ([]Commit, error) {
	if r.kind != KindPatch {
		return nil, fmt.Errorf("release: %s is not a patch release", r.Version)
	}
	prev, err := r.Previous()
	if err != nil {
		return nil, err
	}
	mainline, err := r.repo.ReadCommits(ctx, prev.Tag()+".."+r.cfg.DefaultBranch)
	if err != nil {
		return nil, err
	}
	issues, err := r.Issues(ctx)
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool)
	if excludeAlreadyApplied {
		commits, err := r.Commits(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range commits {
			if c.Title.Issue != "" {
				applied[c.Title.Issue] = true
			}
		}
	}

	// git log is newest-first; picks must be applied oldest-first
	var picks []Commit
	for i := len(mainline) - 1; i >= 0; i-- {
		c := NewCommit(mainline[i], r.cfg.CommitURL)
		issue := c.Title.Issue
		if issue == "" {
			continue
		}
		if _, ok := issues[issue]; !ok {
			continue
		}
		if applied[issue] {
			continue
		}
		picks = append(picks, c)
	}
	return picks, nil
}
