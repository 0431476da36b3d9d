package srcls

import (
	"context"
	"io"
	"iter"
)

// Lister enumerates the regular files below a root directory.
type Lister interface {
	// Files returns a lazy sequence of slash-separated paths relative to root.
	// A missing or non-directory root yields nothing. Traversal errors are
	// yielded as *TraversalError unless the error policy skips them.
	Files(ctx context.Context, root string) iter.Seq2[string, error]

	// List collects Files into a slice.
	List(ctx context.Context, root string) ([]string, error)

	// Write streams one path per line to w and returns the number of lines written.
	Write(ctx context.Context, w io.Writer, root string) (int, error)
}
