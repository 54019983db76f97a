package config

import (
	"fmt"

	"github.com/imdario/mergo"
)

type Config struct {
	Verbose       bool     `json:"verbose,omitempty"`
	Quiet         bool     `json:"quiet,omitempty"`
	Product       string   `json:"product,omitempty"`
	Project       string   `json:"project,omitempty"`
	JiraURL       string   `json:"jira_url,omitempty"`
	CommitURL     string   `json:"commit_url,omitempty"`
	DefaultBranch string   `json:"default_branch,omitempty"`
	Branches      []string `json:"branches,omitempty"`
	Upstream      string   `json:"upstream,omitempty"`

	Term TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func GetDefault() Config {
	return Config{
		Product:       "apache-arrow",
		Project:       "ARROW",
		JiraURL:       "https://issues.apache.org/jira",
		CommitURL:     "https://github.com/apache/arrow/commit/%s",
		DefaultBranch: "master",
		Branches:      []string{"master", "main"},
		Upstream:      "origin",
	}
}

// Tag renders the release tag for a version string using the configured
// product name. With the defaults, version "1.0.0" becomes
// "apache-arrow-1.0.0".
func (c Config) Tag(version string) string {
	return fmt.Sprintf("%s-%s", c.Product, version)
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}
