package dirsession

import (
	"fmt"

	"github.com/kaeawc/batchname/internal/naming"
)

// StageCreateFolders plans one folder per name. Nothing touches disk.
func (s *Session) StageCreateFolders(names []string) ([]Change, error) {
	return s.stageNames(KindCreateFolder, names)
}

// StageCreateFiles plans one empty file per name. Nothing touches disk.
func (s *Session) StageCreateFiles(names []string) ([]Change, error) {
	return s.stageNames(KindCreateFile, names)
}

// StageCreateFoldersBySequence plans prefix_001 .. prefix_<count> folders.
func (s *Session) StageCreateFoldersBySequence(count int, prefix string) ([]Change, error) {
	return s.stageSequence(KindCreateFolder, count, prefix, "")
}

// StageCreateFilesBySequence plans prefix_001<ext> .. prefix_<count><ext> files
// using the session's file extension.
func (s *Session) StageCreateFilesBySequence(count int, prefix string) ([]Change, error) {
	return s.stageSequence(KindCreateFile, count, prefix, s.fileExt)
}

// StageRenameFilesSequential plans renaming every file in the current
// directory to prefix_NNN, keeping each file's extension.
func (s *Session) StageRenameFilesSequential(prefix string) ([]Change, error) {
	_, files, err := s.ListContents()
	if err != nil {
		return nil, err
	}

	return s.stageRenames(files, prefix, true)
}

// StageRenameFoldersSequential plans renaming every folder in the current
// directory to prefix_NNN.
func (s *Session) StageRenameFoldersSequential(prefix string) ([]Change, error) {
	folders, _, err := s.ListContents()
	if err != nil {
		return nil, err
	}

	return s.stageRenames(folders, prefix, false)
}

func (s *Session) stageNames(kind Kind, names []string) ([]Change, error) {
	r := s.newResolver(s.reserveStaged)
	changes := make([]Change, 0, len(names))

	for _, name := range names {
		if err := naming.Validate(name); err != nil {
			return nil, err
		}

		unique, err := r.resolve(name)
		if err != nil {
			return nil, err
		}

		changes = append(changes, Change{Kind: kind, Original: name, Resolved: unique})
	}

	s.logger.Debugf("Staged %d %s change(s) in %s", len(changes), kind, s.current)

	return changes, nil
}

func (s *Session) stageSequence(kind Kind, count int, prefix, ext string) ([]Change, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	if err := naming.Validate(naming.Sequence(prefix, 1, ext)); err != nil {
		return nil, err
	}

	names := make([]string, count)
	for i := range names {
		names[i] = naming.Sequence(prefix, i+1, ext)
	}

	return s.stageNames(kind, names)
}

func (s *Session) stageRenames(entries []string, prefix string, keepExt bool) ([]Change, error) {
	if err := naming.Validate(naming.Sequence(prefix, 1, "")); err != nil {
		return nil, err
	}

	r := s.newResolver(s.reserveStaged)
	changes := make([]Change, 0, len(entries))

	for i, entry := range entries {
		ext := ""
		if keepExt {
			_, ext = naming.Split(entry)
		}

		unique, err := r.resolve(naming.Sequence(prefix, i+1, ext))
		if err != nil {
			return nil, err
		}

		changes = append(changes, Change{Kind: KindRename, Original: entry, Resolved: unique})
	}

	s.logger.Debugf("Staged %d rename(s) in %s", len(changes), s.current)

	return changes, nil
}
