// Package dirsession tracks a current directory, lists and navigates it, and
// stages and commits batches of folder/file creations and renames.
package dirsession

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/kaeawc/batchname/internal/logging"
	"github.com/kaeawc/batchname/internal/naming"
)

// Session owns the current directory pointer. It is not safe for concurrent use.
type Session struct {
	current       string
	fs            FileSystem
	logger        logging.Logger
	fileExt       string
	reserveStaged bool
}

// Option configures a Session
type Option func(*Session)

// WithFileSystem replaces the os-backed filesystem
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Session) {
		s.fs = fsys
	}
}

// WithLogger sets the logging collaborator
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithFileExt sets the extension used for sequentially created files
func WithFileExt(ext string) Option {
	return func(s *Session) {
		s.fileExt = ext
	}
}

// WithReserveStaged controls whether names resolved earlier in the same
// staging call block later ones. When disabled, only the filesystem is checked
// and two identical requests in one batch resolve to the same name.
func WithReserveStaged(reserve bool) Option {
	return func(s *Session) {
		s.reserveStaged = reserve
	}
}

// New validates path and starts a session there.
func New(path string, opts ...Option) (*Session, error) {
	s := &Session{
		fs:            NewFileSystem(),
		logger:        logging.NewLogger(io.Discard, logging.INFO),
		fileExt:       naming.DefaultFileExt,
		reserveStaged: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := s.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Errorf("Folder %s does not exist", abs)
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}

		s.logger.Errorf("Cannot open %s: %v", abs, err)

		return nil, fmt.Errorf("failed to open %s: %w", abs, err)
	}

	if !info.IsDir() {
		s.logger.Errorf("%s is not a folder", abs)
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}

	s.current = abs
	s.logger.Infof("Session started in %s", abs)

	return s, nil
}

// Current returns the current absolute directory
func (s *Session) Current() string {
	return s.current
}

// FileExt returns the extension used for sequentially created files
func (s *Session) FileExt() string {
	return s.fileExt
}

// ListContents returns the names of the immediate child folders and files in
// listing order. Symlinks are classified by their target.
func (s *Session) ListContents() (folders, files []string, err error) {
	entries, err := s.fs.ReadDir(s.current)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", s.current, err)
	}

	folders = []string{}
	files = []string{}

	for _, entry := range entries {
		mode := entry.Type()

		if mode&fs.ModeSymlink != 0 {
			info, statErr := s.fs.Stat(filepath.Join(s.current, entry.Name()))
			if statErr != nil {
				// dangling link
				continue
			}

			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			folders = append(folders, entry.Name())
		case mode.IsRegular():
			files = append(files, entry.Name())
		}
	}

	return folders, files, nil
}

// NavigateInto makes the child folder name the current directory.
func (s *Session) NavigateInto(name string) error {
	if err := naming.Validate(name); err != nil {
		s.logger.Errorf("Folder %s does not exist in %s", name, s.current)
		return fmt.Errorf("%w: %w", ErrNavigation, err)
	}

	target := filepath.Join(s.current, name)

	info, err := s.fs.Stat(target)
	if err != nil || !info.IsDir() {
		s.logger.Errorf("Folder %s does not exist in %s", name, s.current)
		return fmt.Errorf("%w: %s is not a folder in %s", ErrNavigation, name, s.current)
	}

	s.current = target
	s.logger.Infof("Moved into folder: %s", s.current)

	return nil
}

// NavigateToParent moves one level up. At the filesystem root it fails with
// ErrAtRoot and the current directory is unchanged.
func (s *Session) NavigateToParent() error {
	parent := filepath.Dir(s.current)
	if parent == s.current {
		s.logger.Warnf("Cannot go above %s, already at the root", s.current)
		return fmt.Errorf("%w: %s", ErrAtRoot, s.current)
	}

	s.current = parent
	s.logger.Infof("Moved to parent folder: %s", s.current)

	return nil
}

// ResolveUniqueName returns candidate, or the first candidate_NNN variant
// (suffix placed before the extension) that does not exist in the current
// directory. Only the live filesystem is consulted.
func (s *Session) ResolveUniqueName(candidate string) (string, error) {
	return s.newResolver(false).resolve(candidate)
}

func (s *Session) exists(name string) (bool, error) {
	_, err := s.fs.Lstat(filepath.Join(s.current, name))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check %s: %w", name, err)
	}
}

// resolver tracks names handed out during one staging call
type resolver struct {
	s        *Session
	reserved map[string]bool
}

func (s *Session) newResolver(reserve bool) *resolver {
	r := &resolver{s: s}
	if reserve {
		r.reserved = make(map[string]bool)
	}

	return r
}

func (r *resolver) taken(name string) (bool, error) {
	if r.reserved[name] {
		return true, nil
	}

	return r.s.exists(name)
}

func (r *resolver) resolve(candidate string) (string, error) {
	unique := candidate

	for counter := 1; ; counter++ {
		taken, err := r.taken(unique)
		if err != nil {
			return "", err
		}

		if !taken {
			break
		}

		unique = naming.WithSuffix(candidate, counter)
	}

	if r.reserved != nil {
		r.reserved[unique] = true
	}

	return unique, nil
}
