package remote

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "fake:/a.mp3", Join("fake:", "a.mp3"))
	assert.Equal(t, "fake:/sub/c.mp3", Join("fake:", "sub/c.mp3"))
	assert.Equal(t, "dropbox:Podcasts/sub/c.mp3", Join("dropbox:Podcasts/", "sub/c.mp3"))
	assert.Equal(t, "/srv/pods/x.mp3", Join("/srv/pods", "/x.mp3"))
}

func TestLocal_List(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), "aaaa")
	writeFile(t, filepath.Join(root, "show", "b.mp3"), "bb")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")

	entries, err := NewLocal().List(context.Background(), root)
	require.NoError(t, err)

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Path: "a.mp3", Name: "a.mp3", Size: 4}, entries[0])
	assert.Equal(t, "show", entries[2].Path)
	assert.True(t, entries[2].IsDir)
	assert.Equal(t, Entry{Path: "show/b.mp3", Name: "b.mp3", Size: 2}, entries[3])
}

func TestLocal_List_MissingRoot(t *testing.T) {
	_, err := NewLocal().List(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "list", opErr.Op)
}

func TestLocal_CopyAndDelete(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "show", "b.mp3")
	writeFile(t, src, "payload")
	dst := filepath.Join(t.TempDir(), "staged.tmp")

	l := NewLocal()
	require.NoError(t, l.Copy(context.Background(), Join(root, "show/b.mp3"), dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	require.NoError(t, l.Delete(context.Background(), src))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	err = l.Delete(context.Background(), src)
	assert.ErrorIs(t, err, ErrNotFound)

	err = l.Copy(context.Background(), src, dst)
	assert.ErrorIs(t, err, ErrNotFound)
}
