package dirsession

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaeawc/batchname/internal/logging"
)

func newFakeSession(t *testing.T, fake *FakeFileSystem, opts ...Option) *Session {
	t.Helper()

	opts = append([]Option{WithFileSystem(fake)}, opts...)

	s, err := New("/work", opts...)
	require.NoError(t, err)

	return s
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "existing directory", path: dir},
		{name: "missing path", path: filepath.Join(dir, "nope"), wantErr: ErrNotFound},
		{name: "regular file", path: file, wantErr: ErrNotADirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger(logging.DEBUG)

			s, err := New(tt.path, WithLogger(logger))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, s)
				assert.NotEmpty(t, logger.EntriesAt(logging.ERROR))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, dir, s.Current())
		})
	}
}

func TestNew_RelativePathIsMadeAbsolute(t *testing.T) {
	s, err := New(".")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, s.Current())
}

func TestResolveUniqueName(t *testing.T) {
	fake := NewFakeFileSystem().
		AddFile("/work/notes.txt").
		AddFile("/work/notes_001.txt").
		AddDir("/work/photos").
		AddFile("/work/.env")
	s := newFakeSession(t, fake)

	tests := []struct {
		candidate string
		want      string
	}{
		{candidate: "fresh.txt", want: "fresh.txt"},
		{candidate: "photos", want: "photos_001"},
		{candidate: "notes.txt", want: "notes_002.txt"},
		{candidate: ".env", want: ".env_001"},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			got, err := s.ResolveUniqueName(tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Empty(t, fake.Operations(), "resolving must not mutate the filesystem")
}

func TestResolveUniqueName_PicksSmallestFreeSuffix(t *testing.T) {
	fake := NewFakeFileSystem().
		AddDir("/work/x").
		AddDir("/work/x_001").
		AddDir("/work/x_003")
	s := newFakeSession(t, fake)

	got, err := s.ResolveUniqueName("x")
	require.NoError(t, err)
	assert.Equal(t, "x_002", got)
}

func TestResolveUniqueName_StatError(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work")
	fake.SetError("Lstat", "/work/locked", fs.ErrPermission)
	s := newFakeSession(t, fake)

	_, err := s.ResolveUniqueName("locked")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestListContents(t *testing.T) {
	fake := NewFakeFileSystem().
		AddDir("/work/b-dir").
		AddDir("/work/a-dir/nested").
		AddFile("/work/z.txt").
		AddFile("/work/a-dir/inner.txt").
		AddFile("/work/m.md")
	s := newFakeSession(t, fake)

	folders, files, err := s.ListContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-dir", "b-dir"}, folders)
	assert.Equal(t, []string{"m.md", "z.txt"}, files)
}

func TestListContents_Empty(t *testing.T) {
	s := newFakeSession(t, NewFakeFileSystem().AddDir("/work"))

	folders, files, err := s.ListContents()
	require.NoError(t, err)
	assert.Empty(t, folders)
	assert.Empty(t, files)
}

func TestListContents_Symlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), nil, 0o600))

	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link-dir")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, os.Symlink(filepath.Join(dir, "file.txt"), filepath.Join(dir, "link-file")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	s, err := New(dir)
	require.NoError(t, err)

	folders, files, err := s.ListContents()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"real", "link-dir"}, folders)
	assert.ElementsMatch(t, []string{"file.txt", "link-file"}, files)
}

func TestNavigateInto(t *testing.T) {
	fake := NewFakeFileSystem().
		AddDir("/work/child").
		AddFile("/work/file.txt")

	tests := []struct {
		name    string
		target  string
		wantErr bool
		want    string
	}{
		{name: "child folder", target: "child", want: "/work/child"},
		{name: "missing folder", target: "ghost", wantErr: true, want: "/work"},
		{name: "file is not a folder", target: "file.txt", wantErr: true, want: "/work"},
		{name: "parent reference", target: "..", wantErr: true, want: "/work"},
		{name: "nested path", target: "child/..", wantErr: true, want: "/work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger(logging.DEBUG)
			s := newFakeSession(t, fake, WithLogger(logger))

			err := s.NavigateInto(tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNavigation)
				assert.NotEmpty(t, logger.EntriesAt(logging.ERROR))
			} else {
				assert.NoError(t, err)
				assert.True(t, logger.Contains(logging.INFO, tt.want))
			}

			assert.Equal(t, tt.want, s.Current())
		})
	}
}

func TestNavigateToParent(t *testing.T) {
	fake := NewFakeFileSystem().AddDir("/work/child")
	logger := logging.NewMockLogger(logging.DEBUG)
	s := newFakeSession(t, fake, WithLogger(logger))

	require.NoError(t, s.NavigateInto("child"))
	require.NoError(t, s.NavigateToParent())
	assert.Equal(t, "/work", s.Current())

	require.NoError(t, s.NavigateToParent())
	assert.Equal(t, "/", s.Current())

	err := s.NavigateToParent()
	assert.ErrorIs(t, err, ErrAtRoot)
	assert.Equal(t, "/", s.Current(), "current path must be unchanged at the root")
	assert.Len(t, logger.EntriesAt(logging.WARN), 1)
}
