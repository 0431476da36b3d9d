package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/srcls/internal/files/lister"
	"github.com/vvka-141/srcls/internal/logging"
	"github.com/vvka-141/srcls/pkg/srcls"
)

var rootCmd = &cobra.Command{
	Use:   "srcls [root]",
	Short: "List every file under a directory, relative to it",
	Long: `srcls walks a directory tree and prints the path of every regular file,
relative to the root directory, one per line on stdout.

Directories, symbolic links and other special files are not printed.
Symbolic links are never followed.

Arguments:
  root    Directory to list (default "src/")

The root and error policy may also be set through the environment
(SRCLS_ROOT, SRCLS_ON_ERROR, a .env file in the working directory is
loaded first) or a srcls.yaml file:

  root: src/
  on_error: abort   # or skip

Precedence: command line, then environment, then srcls.yaml, then defaults.

A root named like a subcommand (version, help, completion) is taken as that
subcommand; write it as a path instead, e.g. "srcls ./version".

Exit Codes:
  0  - Success (a missing root lists nothing and succeeds)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - A directory could not be read (with --on-error=abort)`,
	Example: `  # List ./src
  srcls

  # List another tree, carrying on past unreadable directories
  srcls ./vendor --on-error skip

  # List a directory named "version" rather than running the subcommand
  srcls ./version`,
	Args:              OptionalRoot,
	RunE:              runList,
	ValidArgsFunction: completeDirectories,
	SilenceUsage:      true,
}

type listFlagValues struct {
	onError    string
	configPath string
}

var listFlags listFlagValues

func resetListFlags() {
	listFlags = listFlagValues{}
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output on stderr")

	rootCmd.Flags().StringVar(&listFlags.onError, "on-error", "",
		"What to do when a directory cannot be read: abort or skip (default abort)")
	rootCmd.Flags().StringVar(&listFlags.configPath, "config", "",
		"Path to a config file (default ./"+srcls.ConfigFileName+" if present)")

	_ = rootCmd.RegisterFlagCompletionFunc("on-error", completeErrorPolicies)
	_ = rootCmd.MarkFlagFilename("config", "yaml", "yml")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func runList(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLoggerWithWriter(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	opts, err := resolveOptions(args, logger)
	if err != nil {
		return err
	}
	logger.Verbose("Root: %s, on error: %s", opts.root, opts.policy)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := lister.NewLister(logger).WithErrorPolicy(opts.policy)
	if _, err := l.Write(ctx, cmd.OutOrStdout(), opts.root); err != nil {
		return fmt.Errorf("listing %s: %w", opts.root, err)
	}
	return nil
}
