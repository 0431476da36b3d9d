package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/srcls/pkg/srcls"
)

// OptionalRoot validates that at most one root argument is provided.
// Returns a helpful error message with usage if there are too many.
func OptionalRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`%w: accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./src`, srcls.ErrUsage, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
