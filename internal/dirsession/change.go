package dirsession

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// Kind is the filesystem action a Change performs
type Kind string

// Change kinds
const (
	KindCreateFolder Kind = "create-folder"
	KindCreateFile   Kind = "create-file"
	KindRename       Kind = "rename"
)

// Label returns a human-readable name for the kind
func (k Kind) Label() string {
	switch k {
	case KindCreateFolder:
		return "Create folder"
	case KindCreateFile:
		return "Create file"
	case KindRename:
		return "Rename"
	default:
		return string(k)
	}
}

// Change is one staged action: for creations Original is the requested name,
// for renames it is the existing entry. Resolved is the collision-free target.
type Change struct {
	Kind     Kind
	Original string
	Resolved string
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Kind.Label(), c.Original, c.Resolved)
}

// Status is the outcome of a single Change
type Status string

// Change outcomes
const (
	StatusApplied Status = "applied"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Reason tags why a Change failed
type Reason string

// Failure reasons
const (
	ReasonNone             Reason = ""
	ReasonAlreadyExists    Reason = "already-exists"
	ReasonPermissionDenied Reason = "permission-denied"
	ReasonNotFound         Reason = "not-found"
	ReasonInvalidName      Reason = "invalid-name"
	ReasonIOError          Reason = "io-error"
	ReasonCanceled         Reason = "canceled"
	ReasonDeclined         Reason = "declined"
)

// classify maps a filesystem error onto a Reason
func classify(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInvalidName):
		return ReasonInvalidName
	case errors.Is(err, fs.ErrExist):
		return ReasonAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	default:
		return ReasonIOError
	}
}

// Result is the typed outcome of committing one Change
type Result struct {
	Change Change
	Status Status
	Reason Reason
	Err    error
}

// Report aggregates the Results of one commit
type Report struct {
	BatchID     string
	Results     []Result
	NothingToDo bool
	Declined    bool
	Duration    time.Duration
}

// Applied returns the results that were written to disk
func (r *Report) Applied() []Result {
	return r.filter(StatusApplied)
}

// Failed returns the results that could not be applied
func (r *Report) Failed() []Result {
	return r.filter(StatusFailed)
}

// Skipped returns the results that were never attempted
func (r *Report) Skipped() []Result {
	return r.filter(StatusSkipped)
}

func (r *Report) filter(status Status) []Result {
	var out []Result

	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}

	return out
}
