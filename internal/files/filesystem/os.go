package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// osFile implements File for the OS filesystem
type osFile struct {
	path    string
	relPath string
	name    string
	mode    fs.FileMode
}

func (f *osFile) Path() string         { return f.path }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Name() string         { return f.name }
func (f *osFile) Type() fs.FileMode    { return f.mode }

// osDirectory implements Directory for the OS filesystem
type osDirectory struct {
	absPath string
}

func (d *osDirectory) Path() string { return d.absPath }

func (d *osDirectory) Walk(fn WalkFunc) error {
	return filepath.WalkDir(d.absPath, func(path string, entry fs.DirEntry, walkErr error) error {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = &PanicError{Path: path, Value: r}
				}
			}()

			relPath, relErr := filepath.Rel(d.absPath, path)
			if relErr != nil {
				callbackErr = fn(nil, fmt.Errorf("failed to get relative path: %w", relErr))
				return
			}

			file := &osFile{
				path:    path,
				relPath: filepath.ToSlash(relPath),
				name:    filepath.Base(path),
			}
			if entry != nil {
				file.mode = entry.Type()
			}

			callbackErr = fn(file, walkErr)
		}()

		return callbackErr
	})
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open resolves path to an absolute directory. A root that is itself a
// symbolic link is resolved once so the walk starts inside its target;
// links below the root are never followed.
func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		// A path running through a regular file (file.txt/sub) does not exist.
		if errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("failed to access path: %w: %w", fs.ErrNotExist, err)
		}
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if linfo, err := os.Lstat(absPath); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		absPath = resolved
	}

	return &osDirectory{absPath: absPath}, nil
}
