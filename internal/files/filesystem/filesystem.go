package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNotDirectory is returned by Open when the path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// PanicError is returned from Walk when the callback panics. Value holds
// the recovered panic value unchanged.
type PanicError struct {
	Path  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("walk callback panicked at %s: %v", e.Path, e.Value)
}

// File represents a single entry discovered while walking a directory.
type File interface {
	// Path returns the full path to the entry
	Path() string

	// RelativePath returns the slash-separated path relative to the walked
	// directory. The directory itself is ".".
	RelativePath() string

	// Name returns the base name of the entry
	Name() string

	// Type returns the type bits of the entry's mode (fs.ModeDir,
	// fs.ModeSymlink, ...). Regular files have no type bits set.
	Type() fs.FileMode
}

// WalkFunc is called for every entry visited by Directory.Walk.
//
// When err is non-nil, file identifies the entry that could not be read
// (it may be nil if even that is unknown). Returning fs.SkipDir for a
// directory skips its contents; any other non-nil error stops the walk
// and is returned from Walk.
type WalkFunc func(file File, err error) error

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the path to the directory
	Path() string

	// Walk traverses the directory tree top-down, calling fn for the
	// directory itself and for every entry below it.
	Walk(fn WalkFunc) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens the directory at path. A missing path yields an error
	// matching fs.ErrNotExist; a path that is not a directory yields an
	// error matching ErrNotDirectory.
	Open(path string) (Directory, error)
}

// IsRegular reports whether f is a regular file.
func IsRegular(f File) bool {
	return f != nil && f.Type().IsRegular()
}
