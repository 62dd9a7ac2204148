package dirsession

import (
	"errors"

	"github.com/kaeawc/batchname/internal/naming"
)

var (
	// ErrNotFound is returned by New when the start path does not exist
	ErrNotFound = errors.New("directory not found")
	// ErrNotADirectory is returned by New when the start path is not a directory
	ErrNotADirectory = errors.New("not a directory")
	// ErrNavigation is returned when the navigation target is not a directory
	ErrNavigation = errors.New("cannot navigate")
	// ErrAtRoot is returned when navigating up from the filesystem root
	ErrAtRoot = errors.New("already at filesystem root")
	// ErrInvalidCount is returned by sequence staging for counts below 1
	ErrInvalidCount = errors.New("count must be a positive integer")
	// ErrInvalidName is returned by staging for names that are not a single path segment
	ErrInvalidName = naming.ErrInvalidName
)
