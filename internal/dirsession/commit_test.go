package dirsession

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaeawc/batchname/internal/logging"
)

func TestCommit_NothingToDo(t *testing.T) {
	for _, confirm := range []bool{true, false} {
		fake := NewFakeFileSystem().AddDir("/work")
		s := newFakeSession(t, fake)

		opts := &CommitOptions{}
		if confirm {
			opts.Confirm = func([]Change) bool {
				t.Fatal("confirmation must not be requested for an empty batch")
				return false
			}
		}

		report := s.Commit(context.Background(), nil, opts)
		assert.True(t, report.NothingToDo)
		assert.Empty(t, report.Results)
		assert.Empty(t, fake.Operations())
	}
}

func TestCommit_AppliesInOrder(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	logger := logging.NewMockLogger(logging.DEBUG)
	s := newFakeSession(t, fake, WithLogger(logger))

	changes := []Change{
		{Kind: KindCreateFolder, Original: "docs", Resolved: "docs"},
		{Kind: KindCreateFile, Original: "a.txt", Resolved: "a.txt"},
	}

	var progress []int

	report := s.Commit(context.Background(), changes, &CommitOptions{
		OnResult: func(done, total int, result Result) {
			assert.Equal(t, 2, total)
			assert.Equal(t, StatusApplied, result.Status)
			progress = append(progress, done)
		},
	})

	require.Len(t, report.Results, 2)
	assert.Len(t, report.Applied(), 2)
	assert.Empty(t, report.Failed())
	assert.Equal(t, []int{1, 2}, progress)
	assert.Equal(t, []string{
		"Mkdir(/work/docs, -rwxr-xr-x)",
		"CreateExclusive(/work/a.txt, -rw-r--r--)",
	}, fake.Operations())

	_, err := uuid.Parse(report.BatchID)
	assert.NoError(t, err)

	assert.True(t, logger.Contains(logging.INFO, "Created folder docs"))
	assert.True(t, logger.Contains(logging.INFO, "Created file a.txt"))

	for _, e := range logger.EntriesAt(logging.INFO) {
		if e.Message == "Created folder docs" {
			assert.Equal(t, report.BatchID, e.BatchID)
		}
	}
}

func TestCommit_ContinuesAfterFailure(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	fake.SetError("Mkdir", "/work/b", fs.ErrPermission)

	logger := logging.NewMockLogger(logging.DEBUG)
	s := newFakeSession(t, fake, WithLogger(logger))

	changes, err := s.StageCreateFolders([]string{"a", "b", "c"})
	require.NoError(t, err)

	report := s.Commit(context.Background(), changes, nil)

	require.Len(t, report.Results, 3)
	assert.Equal(t, StatusApplied, report.Results[0].Status)
	assert.Equal(t, StatusFailed, report.Results[1].Status)
	assert.Equal(t, ReasonPermissionDenied, report.Results[1].Reason)
	assert.ErrorIs(t, report.Results[1].Err, fs.ErrPermission)
	assert.Equal(t, StatusApplied, report.Results[2].Status)

	assert.True(t, fake.Exists("/work/a"), "earlier changes are not rolled back")
	assert.False(t, fake.Exists("/work/b"))
	assert.True(t, fake.Exists("/work/c"))

	assert.True(t, logger.Contains(logging.ERROR, "for b"))
	assert.Len(t, logger.EntriesAt(logging.WARN), 1, "summary reports the failure")
}

func TestCommit_Declined(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	s := newFakeSession(t, fake)

	changes, err := s.StageCreateFoldersBySequence(2, "x")
	require.NoError(t, err)

	var asked []Change

	report := s.Commit(context.Background(), changes, &CommitOptions{
		Confirm: func(c []Change) bool {
			asked = c
			return false
		},
	})

	assert.Equal(t, changes, asked)
	assert.True(t, report.Declined)
	assert.Len(t, report.Skipped(), 2)
	assert.Equal(t, ReasonDeclined, report.Results[0].Reason)
	assert.Empty(t, fake.Operations())
}

func TestCommit_Confirmed(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	s := newFakeSession(t, fake)

	changes, err := s.StageCreateFoldersBySequence(2, "x")
	require.NoError(t, err)

	report := s.Commit(context.Background(), changes, &CommitOptions{
		Confirm: func([]Change) bool { return true },
	})

	assert.False(t, report.Declined)
	assert.Len(t, report.Applied(), 2)
	assert.True(t, fake.Exists("/work/x_001"))
	assert.True(t, fake.Exists("/work/x_002"))
}

func TestCommit_RenameFilesSequential(t *testing.T) {
	fake := NewFakeFileSystem().
		AddFile("/work/a.txt").
		AddFile("/work/b.txt")
	s := newFakeSession(t, fake)

	changes, err := s.StageRenameFilesSequential("f")
	require.NoError(t, err)

	report := s.Commit(context.Background(), changes, nil)
	assert.Len(t, report.Applied(), 2)

	_, files, err := s.ListContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"f_001.txt", "f_002.txt"}, files)
}

func TestCommit_RenameWhenTargetsOverlapSources(t *testing.T) {
	fake := NewFakeFileSystem().
		AddFile("/work/a.txt").
		AddFile("/work/f_001.txt").
		AddFile("/work/f_002.txt")
	s := newFakeSession(t, fake)

	changes, err := s.StageRenameFilesSequential("f")
	require.NoError(t, err)

	report := s.Commit(context.Background(), changes, nil)
	assert.Empty(t, report.Failed())

	_, files, err := s.ListContents()
	require.NoError(t, err)
	assert.Len(t, files, 3, "no file may be lost to an overwrite")
}

func TestCommit_DuplicateRequestsInOneBatch(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)

	changes, err := s.StageCreateFiles([]string{"same.txt", "same.txt"})
	require.NoError(t, err)

	report := s.Commit(context.Background(), changes, nil)
	assert.Len(t, report.Applied(), 2)

	_, files, err := s.ListContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"same.txt", "same_001.txt"}, files)
}

func TestCommit_DoesNotOverwriteLateArrivals(t *testing.T) {
	fake := NewFakeFileSystem().AddFile("/work/old.txt")
	s := newFakeSession(t, fake)

	renames, err := s.StageRenameFilesSequential("new")
	require.NoError(t, err)

	creates, err := s.StageCreateFiles([]string{"later.txt"})
	require.NoError(t, err)

	// entries appear between staging and commit
	fake.AddFile("/work/new_001.txt")
	fake.AddFile("/work/later.txt")

	report := s.Commit(context.Background(), append(renames, creates...), nil)

	require.Len(t, report.Results, 2)

	for _, r := range report.Results {
		assert.Equal(t, StatusFailed, r.Status)
		assert.Equal(t, ReasonAlreadyExists, r.Reason)
	}

	assert.True(t, fake.Exists("/work/old.txt"))
}

func TestCommit_InvalidResolvedName(t *testing.T) {
	s := newFakeSession(t, NewFakeFileSystem().AddDir("/work"))

	report := s.Commit(context.Background(), []Change{
		{Kind: KindCreateFolder, Original: "x", Resolved: "../x"},
		{Kind: Kind("bogus"), Original: "y", Resolved: "y"},
	}, nil)

	require.Len(t, report.Results, 2)
	assert.Equal(t, ReasonInvalidName, report.Results[0].Reason)
	assert.Equal(t, ReasonIOError, report.Results[1].Reason)
}

func TestCommit_MissingRenameSource(t *testing.T) {
	s := newFakeSession(t, NewFakeFileSystem().AddDir("/work"))

	report := s.Commit(context.Background(), []Change{
		{Kind: KindRename, Original: "gone.txt", Resolved: "f_001.txt"},
	}, nil)

	require.Len(t, report.Failed(), 1)
	assert.Equal(t, ReasonNotFound, report.Results[0].Reason)
}

func TestCommit_Canceled(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	s := newFakeSession(t, fake)

	changes, err := s.StageCreateFoldersBySequence(3, "x")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	report := s.Commit(ctx, changes, &CommitOptions{
		OnResult: func(done, _ int, _ Result) {
			if done == 1 {
				cancel()
			}
		},
	})

	require.Len(t, report.Results, 3)
	assert.Equal(t, StatusApplied, report.Results[0].Status)
	assert.Equal(t, StatusSkipped, report.Results[1].Status)
	assert.Equal(t, ReasonCanceled, report.Results[2].Reason)
	assert.Len(t, fake.Operations(), 1)
}

type panickingFS struct {
	*FakeFileSystem
}

func (p panickingFS) Mkdir(string, os.FileMode) error {
	panic("disk on fire")
}

func TestCommit_RecoversPerItem(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	s := newFakeSession(t, fake, WithFileSystem(panickingFS{fake}))

	report := s.Commit(context.Background(), []Change{
		{Kind: KindCreateFolder, Original: "a", Resolved: "a"},
		{Kind: KindCreateFile, Original: "b", Resolved: "b"},
	}, nil)

	require.Len(t, report.Results, 2)
	assert.Equal(t, StatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Err.Error(), "disk on fire")
	assert.Equal(t, StatusApplied, report.Results[1].Status)
}

func TestCommit_RealFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.log"), nil, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder_001"), 0o755))

	s, err := New(dir)
	require.NoError(t, err)

	folders, err := s.StageCreateFoldersBySequence(2, "folder")
	require.NoError(t, err)

	files, err := s.StageCreateFilesBySequence(1, "file")
	require.NoError(t, err)

	report := s.Commit(context.Background(), append(folders, files...), nil)
	require.Empty(t, report.Failed())

	gotFolders, gotFiles, err := s.ListContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"folder_001", "folder_001_001", "folder_002"}, gotFolders)
	assert.Equal(t, []string{"file_001.txt", "one.log"}, gotFiles)

	renames, err := s.StageRenameFoldersSequential("dir")
	require.NoError(t, err)

	report = s.Commit(context.Background(), renames, nil)
	require.Empty(t, report.Failed())

	gotFolders, _, err = s.ListContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"dir_001", "dir_002", "dir_003"}, gotFolders)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Reason
	}{
		{err: nil, want: ReasonNone},
		{err: &fs.PathError{Op: "mkdir", Err: fs.ErrExist}, want: ReasonAlreadyExists},
		{err: &fs.PathError{Op: "open", Err: fs.ErrPermission}, want: ReasonPermissionDenied},
		{err: &os.LinkError{Op: "rename", Err: fs.ErrNotExist}, want: ReasonNotFound},
		{err: ErrInvalidName, want: ReasonInvalidName},
		{err: errors.New("disk full"), want: ReasonIOError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.err), "%v", tt.err)
	}
}
