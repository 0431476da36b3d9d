// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines interfaces for walking directory trees, enabling
// testability through an in-memory implementation while keeping the
// production path on the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Factory for opening directories
//   - Directory: A directory that can be walked top-down
//   - File: A single entry discovered during a walk
//
// Implementations:
//   - OSFileSystem: Production implementation backed by filepath.WalkDir
//   - MemoryFileSystem: In-memory implementation for testing
//
// Symbolic links are never followed during a walk; they are reported as
// entries of their own type.
package filesystem
