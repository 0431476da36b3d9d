// Package logging provides concrete implementations of the srcls.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// Stdout is reserved for listing output, so nothing here ever writes to it.
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
