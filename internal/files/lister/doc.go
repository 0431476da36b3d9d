// Package lister enumerates the regular files under a root directory.
//
// The lister walks the tree top-down through a filesystem.FileSystemProvider
// and yields each regular file's path relative to the root, slash-separated.
// Output is produced lazily as an iter.Seq2, so a consumer that stops early
// also stops the underlying directory reads.
//
// A root that does not exist, or is not a directory, yields nothing. I/O
// errors met during the walk are governed by srcls.ErrorPolicy: PolicyAbort
// ends the sequence with a *srcls.TraversalError, PolicySkip logs the error
// and carries on with the rest of the tree.
package lister
