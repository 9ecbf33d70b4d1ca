package walker

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrNotDirectory is returned for a scan root that is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrorKind classifies a scan failure.
type ErrorKind int

const (
	ErrOther ErrorKind = iota
	ErrNotFound
	ErrPermission
	ErrLoop
	ErrNotDir
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrPermission:
		return "permission denied"
	case ErrLoop:
		return "too many levels of symbolic links"
	case ErrNotDir:
		return "not a directory"
	default:
		return "i/o error"
	}
}

// Classify maps a scan error onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrOther
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	case errors.Is(err, syscall.ELOOP):
		return ErrLoop
	case errors.Is(err, ErrNotDirectory), errors.Is(err, syscall.ENOTDIR):
		return ErrNotDir
	default:
		return ErrOther
	}
}

func notDirectory(path string) error {
	return &fs.PathError{Op: "scan", Path: path, Err: ErrNotDirectory}
}
