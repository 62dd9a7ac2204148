package dirsession

import (
	"os"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// FileSystem abstracts the filesystem primitives the session needs
type FileSystem interface {
	// Stat returns file info, following symlinks
	Stat(path string) (os.FileInfo, error)
	// Lstat returns file info without following symlinks
	Lstat(path string) (os.FileInfo, error)
	// ReadDir lists the named directory sorted by name
	ReadDir(path string) ([]os.DirEntry, error)
	// Mkdir creates a single directory
	Mkdir(path string, perm os.FileMode) error
	// CreateExclusive creates an empty file and fails if it already exists
	CreateExclusive(path string, perm os.FileMode) error
	// Rename moves oldPath to newPath
	Rename(oldPath, newPath string) error
}

// RealFileSystem implements FileSystem with the os package
type RealFileSystem struct{}

// NewFileSystem creates a new real file system for production use
func NewFileSystem() FileSystem {
	return &RealFileSystem{}
}

// Stat returns file info
func (f *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info without following symlinks
func (f *RealFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir lists the named directory
func (f *RealFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Mkdir creates a directory
func (f *RealFileSystem) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// CreateExclusive creates an empty file
func (f *RealFileSystem) CreateExclusive(path string, perm os.FileMode) error {
	//nolint:gosec // G304: path is built from the session directory and a validated name
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	return file.Close()
}

// Rename moves oldPath to newPath
func (f *RealFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}
