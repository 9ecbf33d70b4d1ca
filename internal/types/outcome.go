package types

import "time"

// ScanKind tags a ScanOutcome.
type ScanKind int

const (
	ScanMatched ScanKind = iota
	ScanFailed
)

// ActionKind tags an ActionOutcome.
type ActionKind int

const (
	ActionCleaned ActionKind = iota
	ActionFailed
)

type (
	// ScanOutcome is produced by the walker for every matched directory and
	// every directory that could not be read. Path is empty when the failing
	// location is unknown.
	ScanOutcome struct {
		Kind ScanKind `json:"kind"`
		Path string   `json:"path"`
		Err  error    `json:"-"`
	}

	// ActionOutcome is the result of one cleanup attempt on a matched directory.
	ActionOutcome struct {
		Kind     ActionKind    `json:"kind"`
		Path     string        `json:"path"`
		Output   []byte        `json:"-"`
		Err      error         `json:"-"`
		Duration time.Duration `json:"duration"`
	}
)

// Matched returns a ScanOutcome for a project directory.
func Matched(path string) ScanOutcome {
	return ScanOutcome{Kind: ScanMatched, Path: path}
}

// ScanError returns a ScanOutcome for a directory that could not be read.
func ScanError(path string, err error) ScanOutcome {
	return ScanOutcome{Kind: ScanFailed, Path: path, Err: err}
}

// IsMatch reports whether the outcome is a match.
func (o ScanOutcome) IsMatch() bool { return o.Kind == ScanMatched }

// Cleaned returns a successful ActionOutcome.
func Cleaned(path string, output []byte, d time.Duration) ActionOutcome {
	return ActionOutcome{Kind: ActionCleaned, Path: path, Output: output, Duration: d}
}

// ActionError returns a failed ActionOutcome.
func ActionError(path string, output []byte, err error, d time.Duration) ActionOutcome {
	return ActionOutcome{Kind: ActionFailed, Path: path, Output: output, Err: err, Duration: d}
}
