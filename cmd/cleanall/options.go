package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/cleanall/internal/cleaner"
	"github.com/taigrr/cleanall/internal/config"
	"github.com/taigrr/cleanall/internal/marker"
	"github.com/taigrr/cleanall/internal/pathfilter"
	"github.com/taigrr/cleanall/internal/types"
	"github.com/taigrr/cleanall/internal/walker"
)

// flags holds the raw command line values shared by all subcommands.
type flags struct {
	maxDepth   string
	marker     string
	command    string
	workers    int
	jobs       int
	exclude    []string
	nested     bool
	dryRun     bool
	configPath string
	verbose    bool
	noColor    bool
}

func (f *flags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.maxDepth, "max-depth", "d", "", "maximum depth to scan (empty = unlimited)")
	pf.StringVarP(&f.marker, "marker", "m", marker.DefaultName, "file that marks a project directory")
	pf.StringVarP(&f.command, "command", "c", "cargo clean", "cleanup command run inside each project")
	pf.IntVarP(&f.workers, "workers", "w", 0, "directory scanning workers (0 = number of CPUs)")
	pf.IntVarP(&f.jobs, "jobs", "j", 1, "cleanup commands run at the same time")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "directory globs to skip (repeatable)")
	pf.BoolVar(&f.nested, "nested", false, "also look for projects inside matched projects")
	pf.BoolVarP(&f.dryRun, "dry-run", "n", false, "list projects without cleaning them")
	pf.StringVar(&f.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// loadConfig merges defaults, the config file and explicitly set flags, in
// that order. Any error here is fatal and happens before scanning.
func loadConfig(cmd *cobra.Command, f *flags, root string) (config.Config, error) {
	cfg := config.Default()

	path := f.configPath
	if path == "" {
		path = config.Discover(root)
	}
	if path != "" {
		var err error
		cfg, err = config.Load(path, cfg)
		if err != nil {
			return config.Config{}, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("max-depth") {
		depth, err := config.ParseDepth(f.maxDepth)
		if err != nil {
			return config.Config{}, err
		}
		cfg.MaxDepth = depth
	}
	if fl.Changed("marker") {
		cfg.Marker = f.marker
	}
	if fl.Changed("command") {
		cfg.Command = config.ParseCommand(f.command)
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fl.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if fl.Changed("nested") {
		cfg.Nested = f.nested
	}
	if fl.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// pipeline is the scanner and cleaner built from a Config.
type pipeline struct {
	walker  *walker.Walker
	cleaner cleaner.Cleaner
}

func buildPipeline(cfg config.Config) (*pipeline, error) {
	filter, err := pathfilter.New(&types.PathFilterConfig{IgnoredPatterns: cfg.Exclude})
	if err != nil {
		return nil, &config.Error{Field: "exclude", Err: err}
	}

	w := walker.New(marker.New(cfg.Marker), walker.Options{
		MaxDepth:       cfg.Depth(),
		Workers:        cfg.Workers,
		DescendMatches: cfg.Nested,
		Filter:         filter,
	})

	var c cleaner.Cleaner = cleaner.DryRun{}
	if !cfg.DryRun {
		command, err := cleaner.NewCommand(cfg.Command)
		if err != nil {
			return nil, &config.Error{Field: "command", Err: err}
		}
		command.Env = cfg.Env
		c = command
	}

	return &pipeline{walker: w, cleaner: c}, nil
}
