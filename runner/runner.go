// Package runner manages command-line execution
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/quiverhq/quiver/config"
	"github.com/quiverhq/quiver/release"
	"github.com/quiverhq/quiver/vcs"
)

type Runner struct {
	cfg     config.Config
	tracker release.Tracker
	repo    vcs.Interface
}

func New(cfg config.Config, tracker release.Tracker, repo vcs.Interface) *Runner {
	return &Runner{
		cfg:     cfg,
		tracker: tracker,
		repo:    repo,
	}
}

func (r *Runner) load(ctx context.Context, version string) (*release.Release, error) {
	return release.FromTracker(ctx, r.tracker, r.repo, r.cfg, version)
}

// Report prints a summary of one release: its kind, branch, tag,
// neighbors, and how many issues and commits it carries.
func (r *Runner) Report(ctx context.Context, version string) error {
	rel, err := r.load(ctx, version)
	if err != nil {
		return err
	}

	r.cfg.Printf("%s %s", r.cfg.Product, rel.Version)
	r.cfg.Printf("  kind:     %s", rel.Kind())
	r.cfg.Printf("  branch:   %s", rel.Branch())
	r.cfg.Printf("  tag:      %s", rel.Tag())
	r.cfg.Printf("  released: %v", rel.IsReleased())
	if rel.Version.ReleaseDate != "" {
		r.cfg.Printf("  date:     %s", rel.Version.ReleaseDate)
	}

	if prev, err := rel.Previous(); err == nil {
		r.cfg.Printf("  previous: %s", prev.Version)
	} else if errors.Is(err, release.ErrNoPriorRelease) {
		r.cfg.Printf("  previous: (none)")
	} else {
		return err
	}
	if next, err := rel.Next(); err == nil {
		r.cfg.Printf("  next:     %s", next.Version)
	} else if errors.Is(err, release.ErrNoUpcomingRelease) {
		r.cfg.Printf("  next:     (none set)")
	} else {
		return err
	}

	issues, err := rel.Issues(ctx)
	if err != nil {
		return err
	}
	commits, err := rel.Commits(ctx)
	if err != nil {
		return err
	}
	r.cfg.Printf("  issues:   %d", len(issues))
	r.cfg.Printf("  commits:  %d", len(commits))
	return nil
}

// CherryPick writes the git commands that port a patch release's fixes
// onto its maintenance branch, in apply order.
func (r *Runner) CherryPick(ctx context.Context, w io.Writer, version string, excludeAlreadyApplied bool) error {
	rel, err := r.load(ctx, version)
	if err != nil {
		return err
	}
	picks, err := rel.CommitsToPick(ctx, excludeAlreadyApplied)
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		r.cfg.Printf("no commits to pick for %s", rel.Version)
		return nil
	}

	// skip the checkout when the maintenance branch is already checked out
	if current, err := r.repo.CurrentBranch(ctx); err != nil || current != rel.Branch() {
		fmt.Fprintf(w, "git checkout %s\n", rel.Branch())
	}
	for _, c := range picks {
		issue := c.Title.Issue
		fmt.Fprintf(w, "git cherry-pick %s  # %s\n", c.ShortSHA(), issue)
	}
	return nil
}
