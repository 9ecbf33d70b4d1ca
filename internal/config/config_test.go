package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/cleanall/internal/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDepth(t *testing.T) {
	tests := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"0", intPtr(0), false},
		{" 3 ", intPtr(3), false},
		{"-1", nil, true},
		{"three", nil, true},
		{"1.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDepth(tt.in)
			if tt.wantErr {
				var cfgErr *Error
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "max depth", cfgErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func intPtr(n int) *int { return &n }

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Cargo.toml", cfg.Marker)
	assert.Equal(t, []string{"cargo", "clean"}, cfg.Command)
	assert.Equal(t, types.Unlimited, cfg.Depth())
	assert.Nil(t, cfg.MaxDepth)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, ".cleanall.yaml", `
max_depth: 4
marker: package.json
command: [npm, run, clean]
env:
  CI: "1"
workers: 2
jobs: 3
exclude:
  - node_modules
  - .git
nested: true
`)

	cfg, err := Load(path, Default())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Depth())
	assert.Equal(t, "package.json", cfg.Marker)
	assert.Equal(t, []string{"npm", "run", "clean"}, cfg.Command)
	assert.Equal(t, map[string]string{"CI": "1"}, cfg.Env)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"node_modules", ".git"}, cfg.Exclude)
	assert.True(t, cfg.Nested)
	assert.False(t, cfg.DryRun)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "cleanall.toml", `
max_depth = 2
exclude = ["target"]
dry_run = true

[env]
CARGO_TERM_COLOR = "never"
`)

	cfg, err := Load(path, Default())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Depth())
	assert.Equal(t, "Cargo.toml", cfg.Marker, "unset keys keep the base value")
	assert.Equal(t, []string{"cargo", "clean"}, cfg.Command)
	assert.Equal(t, []string{"target"}, cfg.Exclude)
	assert.Equal(t, map[string]string{"CARGO_TERM_COLOR": "never"}, cfg.Env)
	assert.True(t, cfg.DryRun)
}

func TestLoad_EmptyYAMLKeepsBase(t *testing.T) {
	path := writeConfig(t, "empty.yml", "")

	cfg, err := Load(path, Default())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		field   string
	}{
		{"unknown yaml key", "c.yaml", "depth: 3\n", "config file"},
		{"unknown toml key", "c.toml", "depth = 3\n", "config file"},
		{"bad yaml", "c.yaml", "max_depth: [\n", "config file"},
		{"bad toml", "c.toml", "max_depth = \n", "config file"},
		{"unsupported format", "c.json", "{}", "config file"},
		{"negative depth", "c.yaml", "max_depth: -2\n", "max depth"},
		{"empty marker", "c.yaml", "marker: \"  \"\n", "marker"},
		{"marker path", "c.toml", "marker = \"a/Cargo.toml\"\n", "marker"},
		{"empty command", "c.yaml", "command: []\n", "command"},
		{"negative jobs", "c.toml", "jobs = -1\n", "jobs"},
		{"negative workers", "c.toml", "workers = -4\n", "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)

			_, err := Load(path, Default())
			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), Default())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate_DryRunNeedsNoCommand(t *testing.T) {
	cfg := Default()
	cfg.Command = nil
	assert.Error(t, cfg.Validate())

	cfg.DryRun = true
	assert.NoError(t, cfg.Validate())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cleanall.toml"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, ".cleanall.toml"), Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cleanall.yml"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, ".cleanall.yml"), Discover(dir))
}

func TestError(t *testing.T) {
	_, err := ParseDepth("x")
	assert.EqualError(t, err, `invalid max depth "x": not an integer`)

	err = Config{}.Validate()
	assert.EqualError(t, err, "invalid marker: must not be empty")
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, []string{"cargo", "clean", "--release"}, ParseCommand("  cargo clean   --release "))
	assert.Empty(t, ParseCommand(""))
}
