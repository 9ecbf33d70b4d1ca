package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/cleanall/internal/types"
)

func newFilter(t *testing.T, patterns ...string) *PathFilter {
	t.Helper()
	pf, err := New(&types.PathFilterConfig{IgnoredPatterns: patterns})
	require.NoError(t, err)
	return pf
}

func TestPathFilter_NilConfigIgnoresNothing(t *testing.T) {
	pf, err := New(nil)
	require.NoError(t, err)

	for _, path := range []string{"a", ".git", "a/b/target", "node_modules"} {
		assert.False(t, pf.Ignored(path), path)
	}
}

func TestPathFilter_BaseNamePatterns(t *testing.T) {
	pf := newFilter(t, ".git", "node_modules", "tmp*")

	tests := []struct {
		path string
		want bool
	}{
		{".git", true},
		{"project/.git", true},
		{"a/b/c/node_modules", true},
		{"tmp", true},
		{"x/tmp-build", true},
		{"git", false},
		{"project/src", false},
		{"node_modules_backup/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pf.Ignored(tt.path))
		})
	}
}

func TestPathFilter_PathPatterns(t *testing.T) {
	pf := newFilter(t, "vendor/*", "**/build/cache", "archive/**")

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/lib", true},
		{"vendor/lib/inner", false},
		{"build/cache", true},
		{"a/b/build/cache", true},
		{"archive/2019/old", true},
		{"archive", false},
		{"src/vendor/lib", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pf.Ignored(tt.path))
		})
	}
}

func TestPathFilter_NormalizesSeparators(t *testing.T) {
	pf := newFilter(t, `third_party\vendored`)

	assert.True(t, pf.Ignored("third_party/vendored"))
	assert.True(t, pf.Ignored(`third_party\vendored`))
}

func TestPathFilter_RootIsNeverIgnored(t *testing.T) {
	pf := newFilter(t, "**")

	assert.False(t, pf.Ignored(""))
	assert.False(t, pf.Ignored("."))
	assert.True(t, pf.Ignored("anything"))
}

func TestPathFilter_SkipsBlankPatterns(t *testing.T) {
	pf := newFilter(t, "", "  ", "target")

	assert.Equal(t, []string{"target"}, pf.Patterns())
}
