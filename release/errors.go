package release

import (
	"errors"
	"fmt"
)

// ErrNoUpcomingRelease is returned by Next for the newest known
// version: nothing later has been declared in the tracker yet. Callers
// treat it as "nothing to do" rather than a failure.
var ErrNoUpcomingRelease = errors.New("release: no upcoming release set")

// ErrNoPriorRelease is returned by Previous for the oldest known
// version.
var ErrNoPriorRelease = errors.New("release: no prior release")

// ParseError reports malformed input such as a bad version string or an
// issue key without a numeric suffix.
type ParseError struct {
	Input  string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("release: cannot parse %q: %s", e.Input, e.Reason)
}

// NotFoundError reports a version the tracker has no record of.
type NotFoundError struct {
	Version string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("release: version %q not found in tracker", e.Version)
}
