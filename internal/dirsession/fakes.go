package dirsession

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FakeFileSystem is an in-memory FileSystem for tests
type FakeFileSystem struct {
	mu sync.Mutex
	// Dirs stores directories keyed by clean absolute path
	Dirs map[string]bool
	// Files stores regular files keyed by clean absolute path
	Files map[string]bool
	// Errors maps "Op path" (e.g. "Mkdir /a/b") or a bare path to an error
	Errors map[string]error
	// OperationLog records every mutating call
	OperationLog []string
}

// NewFakeFileSystem creates a fake containing only the root directory
func NewFakeFileSystem() *FakeFileSystem {
	return &FakeFileSystem{
		Dirs:   map[string]bool{string(filepath.Separator): true},
		Files:  make(map[string]bool),
		Errors: make(map[string]error),
	}
}

// AddDir creates path and all its parents
func (f *FakeFileSystem) AddDir(path string) *FakeFileSystem {
	f.mu.Lock()
	defer f.mu.Unlock()

	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		f.Dirs[p] = true
		if filepath.Dir(p) == p {
			break
		}
	}

	return f
}

// AddFile creates a file and its parent directories
func (f *FakeFileSystem) AddFile(path string) *FakeFileSystem {
	path = filepath.Clean(path)
	f.AddDir(filepath.Dir(path))

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Files[path] = true

	return f
}

// SetError makes op on path fail with err. An empty op matches any operation.
func (f *FakeFileSystem) SetError(op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Errors[errorKey(op, filepath.Clean(path))] = err
}

// Exists reports whether path is a known file or directory
func (f *FakeFileSystem) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = filepath.Clean(path)

	return f.Dirs[path] || f.Files[path]
}

// Operations returns a copy of the operation log
func (f *FakeFileSystem) Operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.OperationLog))
	copy(out, f.OperationLog)

	return out
}

func errorKey(op, path string) string {
	if op == "" {
		return path
	}

	return op + " " + path
}

func (f *FakeFileSystem) injected(op, path string) error {
	if err, ok := f.Errors[errorKey(op, path)]; ok {
		return err
	}

	if err, ok := f.Errors[path]; ok {
		return err
	}

	return nil
}

func (f *FakeFileSystem) stat(op, path string) (os.FileInfo, error) {
	path = filepath.Clean(path)

	if err := f.injected(op, path); err != nil {
		return nil, err
	}

	switch {
	case f.Dirs[path]:
		return fakeFileInfo{name: filepath.Base(path), dir: true}, nil
	case f.Files[path]:
		return fakeFileInfo{name: filepath.Base(path)}, nil
	default:
		return nil, &fs.PathError{Op: strings.ToLower(op), Path: path, Err: fs.ErrNotExist}
	}
}

// Stat returns file info
func (f *FakeFileSystem) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stat("Stat", path)
}

// Lstat returns file info
func (f *FakeFileSystem) Lstat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stat("Lstat", path)
}

// ReadDir lists direct children sorted by name
func (f *FakeFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = filepath.Clean(path)

	if err := f.injected("ReadDir", path); err != nil {
		return nil, err
	}

	if !f.Dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	var entries []os.DirEntry

	for p := range f.Dirs {
		if p != path && filepath.Dir(p) == path {
			entries = append(entries, fs.FileInfoToDirEntry(fakeFileInfo{name: filepath.Base(p), dir: true}))
		}
	}

	for p := range f.Files {
		if filepath.Dir(p) == path {
			entries = append(entries, fs.FileInfoToDirEntry(fakeFileInfo{name: filepath.Base(p)}))
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// Mkdir creates a directory
func (f *FakeFileSystem) Mkdir(path string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = filepath.Clean(path)
	f.OperationLog = append(f.OperationLog, fmt.Sprintf("Mkdir(%s, %v)", path, perm))

	if err := f.injected("Mkdir", path); err != nil {
		return err
	}

	if f.Dirs[path] || f.Files[path] {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}

	if !f.Dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrNotExist}
	}

	f.Dirs[path] = true

	return nil
}

// CreateExclusive creates an empty file
func (f *FakeFileSystem) CreateExclusive(path string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = filepath.Clean(path)
	f.OperationLog = append(f.OperationLog, fmt.Sprintf("CreateExclusive(%s, %v)", path, perm))

	if err := f.injected("CreateExclusive", path); err != nil {
		return err
	}

	if f.Dirs[path] || f.Files[path] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}

	if !f.Dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	f.Files[path] = true

	return nil
}

// Rename moves a file or a directory together with its contents
func (f *FakeFileSystem) Rename(oldPath, newPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	f.OperationLog = append(f.OperationLog, fmt.Sprintf("Rename(%s, %s)", oldPath, newPath))

	if err := f.injected("Rename", oldPath); err != nil {
		return err
	}

	switch {
	case f.Files[oldPath]:
		delete(f.Files, oldPath)
		f.Files[newPath] = true
	case f.Dirs[oldPath]:
		prefix := oldPath + string(filepath.Separator)

		var dirs, files []string

		for p := range f.Dirs {
			if p == oldPath || strings.HasPrefix(p, prefix) {
				dirs = append(dirs, p)
			}
		}

		for p := range f.Files {
			if strings.HasPrefix(p, prefix) {
				files = append(files, p)
			}
		}

		for _, p := range dirs {
			delete(f.Dirs, p)
			f.Dirs[newPath+strings.TrimPrefix(p, oldPath)] = true
		}

		for _, p := range files {
			delete(f.Files, p)
			f.Files[newPath+strings.TrimPrefix(p, oldPath)] = true
		}
	default:
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrNotExist}
	}

	return nil
}

type fakeFileInfo struct {
	name string
	dir  bool
}

func (i fakeFileInfo) Name() string { return i.name }
func (i fakeFileInfo) Size() int64  { return 0 }
func (i fakeFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | dirPerm
	}

	return filePerm
}
func (i fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (i fakeFileInfo) IsDir() bool        { return i.dir }
func (i fakeFileInfo) Sys() any           { return nil }
