package dirsession

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kaeawc/batchname/internal/logging"
	"github.com/kaeawc/batchname/internal/naming"
)

// CommitOptions controls a commit
type CommitOptions struct {
	// Confirm, when set, is asked once before anything is written.
	// Returning false skips the whole batch.
	Confirm func(changes []Change) bool
	// OnResult is called after each change with its 1-based position
	OnResult func(done, total int, result Result)
}

// Commit applies changes in order in the current directory. Every change is
// attempted independently: failures are recorded in the Report and the loop
// carries on. Nothing already applied is rolled back.
func (s *Session) Commit(ctx context.Context, changes []Change, opts *CommitOptions) *Report {
	if opts == nil {
		opts = &CommitOptions{}
	}

	started := time.Now()
	report := &Report{BatchID: uuid.New().String()}
	log := s.logger.WithBatch(report.BatchID)

	if len(changes) == 0 {
		report.NothingToDo = true
		log.Info("No changes to apply")

		return report
	}

	if opts.Confirm != nil && !opts.Confirm(changes) {
		report.Declined = true
		report.Results = skipAll(changes, ReasonDeclined)
		report.Duration = time.Since(started)
		log.Infof("Batch of %d change(s) declined, nothing applied", len(changes))

		return report
	}

	log.Infof("Applying %d change(s) in %s", len(changes), s.current)

	for i, change := range changes {
		if err := ctx.Err(); err != nil {
			log.Warnf("Commit canceled after %d of %d change(s): %v", i, len(changes), err)
			report.Results = append(report.Results, skipAll(changes[i:], ReasonCanceled)...)

			break
		}

		result := s.applyOne(change)
		report.Results = append(report.Results, result)

		if result.Status == StatusApplied {
			log.Info(describeApplied(change))
		} else {
			log.Errorf("Error during '%s' for %s: %v", change.Kind.Label(), change.Original, result.Err)
		}

		if opts.OnResult != nil {
			opts.OnResult(i+1, len(changes), result)
		}
	}

	report.Duration = time.Since(started)
	logSummary(log, report)

	return report
}

// applyOne performs a single change and turns any failure, panics included,
// into a Result.
func (s *Session) applyOne(change Change) (result Result) {
	result = Result{Change: change}

	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusFailed
			result.Reason = ReasonIOError
			result.Err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	err := s.apply(change)
	if err != nil {
		result.Status = StatusFailed
		result.Reason = classify(err)
		result.Err = err

		return result
	}

	result.Status = StatusApplied

	return result
}

func (s *Session) apply(change Change) error {
	if err := naming.Validate(change.Resolved); err != nil {
		return err
	}

	target := filepath.Join(s.current, change.Resolved)

	switch change.Kind {
	case KindCreateFolder:
		return s.fs.Mkdir(target, dirPerm)

	case KindCreateFile:
		return s.fs.CreateExclusive(target, filePerm)

	case KindRename:
		if err := naming.Validate(change.Original); err != nil {
			return err
		}

		// os.Rename replaces an existing target; an entry that appeared after
		// staging must not be overwritten
		if _, err := s.fs.Lstat(target); err == nil {
			return &fs.PathError{Op: "rename", Path: target, Err: fs.ErrExist}
		}

		return s.fs.Rename(filepath.Join(s.current, change.Original), target)

	default:
		return fmt.Errorf("unknown change kind %q", change.Kind)
	}
}

func skipAll(changes []Change, reason Reason) []Result {
	results := make([]Result, len(changes))
	for i, c := range changes {
		results[i] = Result{Change: c, Status: StatusSkipped, Reason: reason}
	}

	return results
}

func describeApplied(change Change) string {
	switch change.Kind {
	case KindCreateFolder:
		return "Created folder " + change.Resolved
	case KindCreateFile:
		return "Created file " + change.Resolved
	default:
		return fmt.Sprintf("Renamed %s to %s", change.Original, change.Resolved)
	}
}

func logSummary(log logging.Logger, report *Report) {
	applied, failed, skipped := len(report.Applied()), len(report.Failed()), len(report.Skipped())

	if failed > 0 {
		log.Warnf("Batch finished with errors: %d applied, %d failed, %d skipped in %s",
			applied, failed, skipped, report.Duration)

		return
	}

	log.Infof("Batch finished: %d applied, %d skipped in %s", applied, skipped, report.Duration)
}
