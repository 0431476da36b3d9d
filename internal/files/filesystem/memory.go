package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// memoryNode is a single entry of the in-memory tree
type memoryNode struct {
	path    string
	mode    fs.FileMode
	readErr error // returned when walking into a directory
}

// memoryFile implements File for in-memory entries
type memoryFile struct {
	absPath string
	relPath string
	mode    fs.FileMode
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Name() string         { return path.Base(f.absPath) }
func (f *memoryFile) Type() fs.FileMode    { return f.mode }

// memoryDirectory implements Directory for the in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk visits entries in lexical order, mirroring filepath.WalkDir: a
// directory is reported first, and if it cannot be read it is reported a
// second time together with the error.
func (d *memoryDirectory) Walk(fn WalkFunc) error {
	err := d.walk(d.fs.nodes[d.absPath], fn)
	if err == fs.SkipDir || err == fs.SkipAll {
		return nil
	}
	return err
}

func (d *memoryDirectory) walk(node *memoryNode, fn WalkFunc) error {
	file := d.fileFor(node)

	if err := d.call(fn, file, nil); err != nil {
		if err == fs.SkipDir && node.mode.IsDir() {
			return nil
		}
		return err
	}
	if !node.mode.IsDir() {
		return nil
	}

	if node.readErr != nil {
		err := d.call(fn, file, &fs.PathError{Op: "readdirent", Path: node.path, Err: node.readErr})
		if err == fs.SkipDir {
			return nil
		}
		return err
	}

	for _, child := range d.fs.children(node.path) {
		if err := d.walk(child, fn); err != nil {
			if err == fs.SkipDir {
				break
			}
			return err
		}
	}
	return nil
}

// call invokes fn, converting a panic into an error so one bad callback
// does not crash the whole walk.
func (d *memoryDirectory) call(fn WalkFunc, file File, walkErr error) (callbackErr error) {
	defer func() {
		if r := recover(); r != nil {
			callbackErr = &PanicError{Path: file.Path(), Value: r}
		}
	}()
	return fn(file, walkErr)
}

func (d *memoryDirectory) fileFor(node *memoryNode) *memoryFile {
	rel := "."
	if node.path != d.absPath {
		rel = strings.TrimPrefix(node.path, strings.TrimSuffix(d.absPath, "/")+"/")
	}
	return &memoryFile{absPath: node.path, relPath: rel, mode: node.mode}
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing
type MemoryFileSystem struct {
	nodes map[string]*memoryNode // absolute slash path -> node
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		nodes: make(map[string]*memoryNode),
		root:  root,
	}
	mfs.nodes[root] = &memoryNode{path: root, mode: fs.ModeDir}
	return mfs
}

// AddFile adds a regular file, creating parent directories as needed
func (mfs *MemoryFileSystem) AddFile(filePath string) {
	mfs.add(filePath, 0)
}

// AddDir adds a directory, creating parent directories as needed
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.add(dirPath, fs.ModeDir)
}

// AddSymlink adds a symbolic link entry. Links are never followed.
func (mfs *MemoryFileSystem) AddSymlink(linkPath string) {
	mfs.add(linkPath, fs.ModeSymlink)
}

// AddEntry adds an entry with arbitrary type bits (fs.ModeNamedPipe, fs.ModeSocket, ...)
func (mfs *MemoryFileSystem) AddEntry(entryPath string, mode fs.FileMode) {
	mfs.add(entryPath, mode.Type())
}

// FailDir makes walks report err when reading the directory at dirPath.
// The directory is created if it does not exist.
func (mfs *MemoryFileSystem) FailDir(dirPath string, err error) {
	node := mfs.add(dirPath, fs.ModeDir)
	node.readErr = err
}

func (mfs *MemoryFileSystem) add(p string, mode fs.FileMode) *memoryNode {
	abs := mfs.resolve(p)
	mfs.ensureDirectoriesExist(abs)
	node, exists := mfs.nodes[abs]
	if !exists {
		node = &memoryNode{path: abs}
		mfs.nodes[abs] = node
	}
	node.mode = mode
	return node
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(p string) {
	dir := path.Dir(p)
	if dir == p {
		return
	}
	if _, exists := mfs.nodes[dir]; exists {
		return
	}
	mfs.nodes[dir] = &memoryNode{path: dir, mode: fs.ModeDir}
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// children returns the direct children of dir sorted by name
func (mfs *MemoryFileSystem) children(dir string) []*memoryNode {
	var out []*memoryNode
	for p, node := range mfs.nodes {
		if p != dir && path.Dir(p) == dir {
			out = append(out, node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.resolve(openPath)

	node, exists := mfs.nodes[abs]
	if !exists {
		return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
	}
	if !node.mode.IsDir() {
		return nil, fmt.Errorf("%s: %w", openPath, ErrNotDirectory)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}
