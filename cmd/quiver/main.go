package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/quiverhq/quiver/config"
	"github.com/quiverhq/quiver/jira"
	"github.com/quiverhq/quiver/runner"
	"github.com/quiverhq/quiver/vcs/gitcli"
)

var (
	// overridden by go build -X
	Version = "dev"
)

const defaultConfigFile = "quiver.yaml"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	var help bool
	var version bool
	var cfgFile string
	var includeApplied bool
	var doFetch bool
	overrides := &config.Config{}

	flags := pflag.NewFlagSet("quiver", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVarP(&overrides.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&overrides.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.StringVar(&overrides.Product, "product", "", "product `name` used as the tag prefix")
	flags.StringVar(&overrides.Project, "project", "", "issue tracker project `key`")
	flags.StringVar(&overrides.JiraURL, "jira-url", "", "issue tracker base `url`")
	flags.StringVar(&overrides.CommitURL, "commit-url", "", "commit web url printf `template`")
	flags.StringVarP(&overrides.DefaultBranch, "branch", "b", "", "default branch `name`")
	flags.StringVar(&overrides.Upstream, "upstream", "", "upstream remote `name`")
	flags.BoolVar(&includeApplied, "include-applied", false, "plan picks even for issues already on the maintenance branch")
	flags.BoolVarP(&doFetch, "fetch", "f", false, "fetch the upstream remote before reading history")
	if err := flags.Parse(rawArgs[1:]); err != nil {
		return err
	}
	args := flags.Args()

	if version {
		fmt.Println(Version)
		return nil
	}
	if help || len(args) == 0 {
		usage(flags)
		return nil
	}

	fileCfg, err := readConfigFile(cfgFile)
	if err != nil {
		return err
	}
	if err := mergo.Merge(fileCfg, overrides, mergo.WithOverride); err != nil {
		return err
	}
	cfg := config.New(fileCfg)

	var logger *zap.Logger
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	} else {
		logger = zap.NewNop()
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	repo := gitcli.New(cfg, wd)
	tracker := jira.NewClient(cfg, logger)

	ctx := context.Background()
	if fileCfg.DefaultBranch == "" {
		// not set by flag or file; detect it from the repo
		if mb, err := repo.GetMainBranch(ctx, cfg.Branches); err == nil {
			cfg.DefaultBranch = mb
		}
	}
	r := runner.New(cfg, tracker, repo)
	if doFetch {
		if err := repo.Fetch(ctx, cfg.Upstream, ""); err != nil {
			return err
		}
	}

	command := args[0]
	rest := args[1:]
	if len(rest) != 1 {
		usage(flags)
		return fmt.Errorf("%s expects exactly one version argument", command)
	}
	ver := rest[0]

	switch command {
	case "report":
		return r.Report(ctx, ver)
	case "changelog":
		return r.Changelog(ctx, cfg.Term.Stdout, ver)
	case "pick":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			cfg.Errorf("# review the plan below, then pipe it into sh to apply")
		}
		return r.CherryPick(ctx, cfg.Term.Stdout, ver, !includeApplied)
	default:
		usage(flags)
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage(flags *pflag.FlagSet) {
	fmt.Println("quiver [flags] <report|changelog|pick> <version>")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println(flags.FlagUsages())
}

func readConfigFile(p string) (*config.Config, error) {
	explicit := p != ""
	if !explicit {
		p = defaultConfigFile
	}
	b, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &config.Config{}, nil
		}
		return nil, err
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("reading config file %s failed: %w", p, err)
	}
	return cfg, nil
}
