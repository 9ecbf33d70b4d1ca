// Package config holds the settings of a cleanall run and loads them from
// YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/cleanall/internal/cleaner"
	"github.com/taigrr/cleanall/internal/marker"
	"github.com/taigrr/cleanall/internal/types"
)

// DiscoveryNames are the config files looked up in the scan root when no
// file is given explicitly, in order of preference.
var DiscoveryNames = []string{".cleanall.yaml", ".cleanall.yml", ".cleanall.toml"}

// Config holds the settings of one run.
type Config struct {
	// MaxDepth is nil for an unlimited scan.
	MaxDepth *int
	Marker   string
	Command  []string
	Env      map[string]string
	Workers  int
	Jobs     int
	Exclude  []string
	Nested   bool
	DryRun   bool
}

// fileConfig is the on-disk shape. Pointer fields distinguish unset keys.
type fileConfig struct {
	MaxDepth *int              `yaml:"max_depth" toml:"max_depth"`
	Marker   *string           `yaml:"marker" toml:"marker"`
	Command  []string          `yaml:"command" toml:"command"`
	Env      map[string]string `yaml:"env" toml:"env"`
	Workers  *int              `yaml:"workers" toml:"workers"`
	Jobs     *int              `yaml:"jobs" toml:"jobs"`
	Exclude  []string          `yaml:"exclude" toml:"exclude"`
	Nested   *bool             `yaml:"nested" toml:"nested"`
	DryRun   *bool             `yaml:"dry_run" toml:"dry_run"`
}

// Error is a configuration problem. It is always fatal and is reported
// before any scanning starts.
type Error struct {
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the settings of a plain Cargo cleanup.
func Default() Config {
	return Config{
		Marker:  marker.DefaultName,
		Command: append([]string(nil), cleaner.DefaultCommand...),
		Jobs:    1,
	}
}

// ParseDepth parses a maximum depth. An empty string means unlimited.
func ParseDepth(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &Error{Field: "max depth", Value: s, Err: errors.New("not an integer")}
	}
	if n < 0 {
		return nil, &Error{Field: "max depth", Value: s, Err: errors.New("must not be negative")}
	}
	return &n, nil
}

// ParseCommand splits a command line on whitespace.
func ParseCommand(s string) []string {
	return strings.Fields(s)
}

// Discover returns the first config file from DiscoveryNames present in dir,
// or "" when there is none.
func Discover(dir string) string {
	for _, name := range DiscoveryNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// Load reads path and applies it on top of base. The format is chosen by the
// file extension.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Field: "config file", Value: path, Err: err}
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, &Error{Field: "config file", Value: path, Err: err}
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return Config{}, &Error{Field: "config file", Value: path, Err: err}
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, &Error{Field: "config file", Value: path, Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
		}
	default:
		return Config{}, &Error{Field: "config file", Value: path, Err: fmt.Errorf("unsupported format %q", ext)}
	}

	cfg := raw.apply(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f fileConfig) apply(cfg Config) Config {
	if f.MaxDepth != nil {
		depth := *f.MaxDepth
		cfg.MaxDepth = &depth
	}
	if f.Marker != nil {
		cfg.Marker = strings.TrimSpace(*f.Marker)
	}
	if f.Command != nil {
		cfg.Command = f.Command
	}
	if f.Env != nil {
		cfg.Env = f.Env
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.Jobs != nil {
		cfg.Jobs = *f.Jobs
	}
	if f.Exclude != nil {
		cfg.Exclude = f.Exclude
	}
	if f.Nested != nil {
		cfg.Nested = *f.Nested
	}
	if f.DryRun != nil {
		cfg.DryRun = *f.DryRun
	}
	return cfg
}

// Validate checks that the settings can start a run.
func (c Config) Validate() error {
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return &Error{Field: "max depth", Value: strconv.Itoa(*c.MaxDepth), Err: errors.New("must not be negative")}
	}
	if strings.TrimSpace(c.Marker) == "" {
		return &Error{Field: "marker", Err: errors.New("must not be empty")}
	}
	if strings.ContainsAny(c.Marker, `/\`) {
		return &Error{Field: "marker", Value: c.Marker, Err: errors.New("must be a file name, not a path")}
	}
	if !c.DryRun && (len(c.Command) == 0 || strings.TrimSpace(c.Command[0]) == "") {
		return &Error{Field: "command", Err: errors.New("must not be empty")}
	}
	if c.Workers < 0 {
		return &Error{Field: "workers", Value: strconv.Itoa(c.Workers), Err: errors.New("must not be negative")}
	}
	if c.Jobs < 0 {
		return &Error{Field: "jobs", Value: strconv.Itoa(c.Jobs), Err: errors.New("must not be negative")}
	}
	return nil
}

// Depth returns the walker depth limit.
func (c Config) Depth() int {
	if c.MaxDepth == nil {
		return types.Unlimited
	}
	return *c.MaxDepth
}
