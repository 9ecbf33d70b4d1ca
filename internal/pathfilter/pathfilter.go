// Package pathfilter decides which directories the walker skips.
package pathfilter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/taigrr/cleanall/internal/types"
)

// PathFilter matches root-relative directory paths against ignore globs.
type PathFilter struct {
	patterns []pattern
}

type pattern struct {
	glob     string
	re       *regexp.Regexp
	baseOnly bool
}

// New creates a PathFilter from the given configuration. A nil configuration
// ignores nothing.
func New(config *types.PathFilterConfig) (*PathFilter, error) {
	pf := &PathFilter{}
	if config == nil {
		return pf, nil
	}

	for _, glob := range config.IgnoredPatterns {
		glob = strings.TrimSpace(glob)
		if glob == "" {
			continue
		}
		re, err := compileGlob(glob)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", glob, err)
		}
		pf.patterns = append(pf.patterns, pattern{
			glob:     glob,
			re:       re,
			baseOnly: !strings.Contains(strings.TrimSuffix(normalize(glob), "/"), "/"),
		})
	}

	return pf, nil
}

// compileGlob converts a glob pattern to an anchored regex.
func compileGlob(glob string) (*regexp.Regexp, error) {
	normalizedPattern := strings.TrimSuffix(normalize(glob), "/")

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalizedPattern)

	// Convert glob patterns (unescape the escaped versions)
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*/`, "(.*/)?") // **/ matches zero or more dirs
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*")
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")

	return regexp.Compile("^" + regexPattern + "$")
}

func normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// Ignored reports whether the directory at relPath (relative to the scan
// root) should be skipped. Patterns without a slash match the last path
// component at any depth; other patterns match the whole relative path.
func (pf *PathFilter) Ignored(relPath string) bool {
	if pf == nil || len(pf.patterns) == 0 {
		return false
	}

	normalizedPath := strings.Trim(normalize(relPath), "/")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	base := normalizedPath
	if i := strings.LastIndex(normalizedPath, "/"); i != -1 {
		base = normalizedPath[i+1:]
	}

	for _, p := range pf.patterns {
		if p.baseOnly {
			if p.re.MatchString(base) {
				return true
			}
			continue
		}
		if p.re.MatchString(normalizedPath) {
			return true
		}
	}

	return false
}

// Patterns returns the configured globs.
func (pf *PathFilter) Patterns() []string {
	if pf == nil {
		return nil
	}
	globs := make([]string, 0, len(pf.patterns))
	for _, p := range pf.patterns {
		globs = append(globs, p.glob)
	}
	return globs
}
