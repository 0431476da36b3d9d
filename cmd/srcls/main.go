package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/srcls/internal/cli"
	"github.com/vvka-141/srcls/pkg/srcls"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(srcls.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(srcls.ExitCodeForError(err))
	}
}
