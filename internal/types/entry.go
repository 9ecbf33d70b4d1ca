// Package types defines the data structures shared by the scanner, the
// cleanup runner and the command line front ends.
package types

// Unlimited is the MaxDepth value that disables depth limiting.
const Unlimited = -1

// EntryKind classifies a filesystem entry observed during traversal.
type EntryKind int

const (
	KindOther EntryKind = iota
	KindDir
	KindFile
)

func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

type (
	// DirectoryEntry is a path observed while walking, with its depth below
	// the scan root (the root itself is depth 0).
	DirectoryEntry struct {
		Path  string    `json:"path"`
		Depth int       `json:"depth"`
		Kind  EntryKind `json:"kind"`
	}

	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns []string `json:"ignoredPatterns" yaml:"ignoredPatterns" toml:"ignoredPatterns"`
	}
)
