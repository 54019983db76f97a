// Package release implements the core release model: semantic
// versions, tracker issues, commit titles, and the classification of
// versions into major, minor and patch releases with their issue and
// commit membership.
package release

import (
	"sort"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

// Version is a released or planned project version. Released and
// ReleaseDate are tracker metadata and take no part in equality or
// ordering.
type Version struct {
	semver.Version
	Released    bool   `json:"released,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// ParseVersion parses a plain "major.minor.patch" string. Unlike full
// semver, prerelease and build suffixes are rejected: tracker versions
// are always bare triples.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, ParseError{Input: s, Reason: "expected 3 dot-separated components"}
	}
	var nums [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}, ParseError{Input: s, Reason: "component " + strconv.Itoa(i) + " is not numeric"}
		}
		nums[i] = n
	}
	return Version{
		Version: semver.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]},
	}, nil
}

// MustParseVersion is ParseVersion for statically known strings.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return strconv.FormatUint(v.Major, 10) + "." + strconv.FormatUint(v.Minor, 10) + "." + strconv.FormatUint(v.Patch, 10)
}

// Equal compares (major, minor, patch) only.
func (v Version) Equal(o Version) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

// Less orders by (major, minor, patch) only.
func (v Version) Less(o Version) bool {
	a := semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	b := semver.Version{Major: o.Major, Minor: o.Minor, Patch: o.Patch}
	return a.LT(b)
}

// SortVersions sorts ascending in place.
func SortVersions(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Less(versions[j])
	})
}
