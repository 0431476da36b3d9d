package srcls

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Listing completed
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (too many args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitTraversalError = 11 // Traversal aborted on an I/O error
)

const (
	// DefaultRoot is the directory listed when no root is configured.
	DefaultRoot = "src/"

	// ConfigFileName is the project configuration file looked up in the
	// working directory.
	ConfigFileName = "srcls.yaml"

	// EnvRoot overrides the configured root directory.
	EnvRoot = "SRCLS_ROOT"

	// EnvOnError overrides the configured error policy.
	EnvOnError = "SRCLS_ON_ERROR"
)
