// Package quiver curates releases for a project that tracks work in
// jira and hosts history in git: it classifies versions into major,
// minor and patch releases, collects the issues and commits belonging
// to each, and plans which fixes to cherry-pick onto maintenance
// branches.
//
// Related packages: config, release, jira, runner, model, vcs,
// vcs/gitcli
package quiver

import "github.com/quiverhq/quiver/config"

// Config holds most of the configuration variables for quiver. This
// struct is intended for command-line use, so not all of its attributes
// are applicable to every operation.
//
// See "go doc github.com/quiverhq/quiver/config Config" for more
// information.
type Config = config.Config
