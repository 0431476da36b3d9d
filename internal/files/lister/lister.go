package lister

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"

	"github.com/vvka-141/srcls/internal/files/filesystem"
	"github.com/vvka-141/srcls/pkg/srcls"
)

// errStopped is returned from the walk callback when the consumer stops ranging.
var errStopped = errors.New("listing stopped by consumer")

// Lister discovers regular files in a directory tree.
// A Lister holds no per-call state and may be reused.
type Lister struct {
	fsProvider filesystem.FileSystemProvider
	logger     srcls.Logger
	policy     srcls.ErrorPolicy
}

// NewLister creates a lister over the OS filesystem.
// Panics if logger is nil.
func NewLister(logger srcls.Logger) *Lister {
	return NewListerWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewListerWithFS creates a lister over a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider or logger is nil.
func NewListerWithFS(fsProvider filesystem.FileSystemProvider, logger srcls.Logger) *Lister {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Lister{
		fsProvider: fsProvider,
		logger:     logger,
		policy:     srcls.PolicyAbort,
	}
}

// WithErrorPolicy returns a copy of the lister using policy p.
func (l *Lister) WithErrorPolicy(p srcls.ErrorPolicy) *Lister {
	cp := *l
	cp.policy = p
	return &cp
}

// Policy returns the lister's error policy.
func (l *Lister) Policy() srcls.ErrorPolicy { return l.policy }

// Files returns a lazy sequence of the regular files under root, each as a
// slash-separated path relative to root. Directories, symbolic links and
// other special files are never yielded.
//
// Under PolicyAbort the first traversal error is yielded as a
// *srcls.TraversalError and the sequence ends. Under PolicySkip the error is
// logged and the unreadable directory is skipped. Cancelling ctx ends the
// sequence with ctx.Err().
func (l *Lister) Files(ctx context.Context, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dir, err := l.fsProvider.Open(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, filesystem.ErrNotDirectory) {
				l.logger.Verbose("Nothing to list at %s: %v", root, err)
				return
			}
			openErr := &srcls.TraversalError{Path: root, Err: err}
			if l.policy == srcls.PolicySkip {
				l.logger.Error("Skipping %s: %v", root, err)
				return
			}
			yield("", openErr)
			return
		}

		l.logger.Verbose("Listing %s", dir.Path())

		// inYield stays set if the consumer's loop body panics inside yield;
		// the walk recovers that panic as a PanicError and its original value
		// is re-raised below.
		inYield := false

		walkErr := dir.Walk(func(file filesystem.File, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				return l.handleError(file, err)
			}

			if !filesystem.IsRegular(file) {
				return nil
			}

			inYield = true
			more := yield(file.RelativePath(), nil)
			inYield = false
			if !more {
				return errStopped
			}
			return nil
		})

		if inYield {
			var panicErr *filesystem.PanicError
			if errors.As(walkErr, &panicErr) {
				panic(panicErr.Value)
			}
			panic(walkErr)
		}

		switch {
		case walkErr == nil, errors.Is(walkErr, errStopped):
		case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
			yield("", walkErr)
		default:
			yield("", l.wrap(nil, walkErr))
		}
	}
}

// handleError applies the error policy to an error reported by the walk.
func (l *Lister) handleError(file filesystem.File, err error) error {
	traversalErr := l.wrap(file, err)
	if l.policy == srcls.PolicySkip {
		l.logger.Error("Skipping %s: %v", traversalErr.Path, traversalErr.Err)
		if file != nil && file.Type().IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	return traversalErr
}

// wrap turns a walk error into a *srcls.TraversalError naming the failing path.
func (l *Lister) wrap(file filesystem.File, err error) *srcls.TraversalError {
	var traversalErr *srcls.TraversalError
	if errors.As(err, &traversalErr) {
		return traversalErr
	}

	p := ""
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr):
		p = pathErr.Path
		err = pathErr.Err
	case file != nil:
		p = file.Path()
	}
	return &srcls.TraversalError{Path: p, Err: err}
}

// List collects every path yielded by Files. On error the paths gathered so
// far are returned alongside it.
func (l *Lister) List(ctx context.Context, root string) ([]string, error) {
	var paths []string
	for p, err := range l.Files(ctx, root) {
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	l.logger.Verbose("Listed %d file(s) under %s", len(paths), root)
	return paths, nil
}

// Write streams the listing to w, one newline-terminated path per line, and
// returns the number of lines written. Output is flushed before returning,
// including on error, so everything listed before a failure reaches w.
func (l *Lister) Write(ctx context.Context, w io.Writer, root string) (int, error) {
	bw := bufio.NewWriter(w)
	count := 0

	var listErr error
	for p, err := range l.Files(ctx, root) {
		if err != nil {
			listErr = err
			break
		}
		if _, err := bw.WriteString(p + "\n"); err != nil {
			return count, fmt.Errorf("failed to write output: %w", err)
		}
		count++
	}

	if err := bw.Flush(); err != nil && listErr == nil {
		return count, fmt.Errorf("failed to write output: %w", err)
	}
	if listErr != nil {
		return count, listErr
	}

	l.logger.Verbose("Listed %d file(s) under %s", count, root)
	return count, nil
}

// Verify Lister implements the interface at compile time
var _ srcls.Lister = (*Lister)(nil)
