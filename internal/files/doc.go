// Package files groups the file-related sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - lister: Recursive discovery of regular files relative to a root
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/srcls/internal/files/lister"
//	    "github.com/vvka-141/srcls/internal/logging"
//	)
//
//	l := lister.NewLister(logging.NewConsoleLogger(false))
//	for path, err := range l.Files(ctx, "src/") {
//	    ...
//	}
package files
