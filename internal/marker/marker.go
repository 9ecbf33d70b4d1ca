// Package marker decides whether a directory is a project root.
package marker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// DefaultName is the marker file of a Cargo project.
const DefaultName = "Cargo.toml"

// Detector checks directories for a marker file.
type Detector struct {
	Name string
}

// New creates a Detector for the given marker file name. An empty name
// selects DefaultName.
func New(name string) *Detector {
	if name == "" {
		name = DefaultName
	}
	return &Detector{Name: name}
}

// IsProjectRoot reports whether dir directly contains the marker file.
// A missing marker is not an error; any other failure to check it is.
func (d *Detector) IsProjectRoot(dir string) (bool, error) {
	_, err := os.Stat(filepath.Join(dir, d.Name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}
