package far

import (
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilesystem(t *testing.T) afero.Fs {
	t.Helper()
	data := buildArchive("FAR!byAZ", 1, []testMember{
		{name: "a.txt", content: []byte("hello")},
		{name: "dir\\b.txt", content: []byte("abc")},
		{name: "dir\\sub\\c.txt", content: []byte("deep")},
	})
	fs, path := writeTestArchive(t, data)

	farFs, err := NewFarFilesystemWithFs(fs, path)
	require.NoError(t, err)
	t.Cleanup(func() { farFs.(io.Closer).Close() })
	return farFs
}

func TestFarFilesystemReadsMembers(t *testing.T) {
	fs := newTestFilesystem(t)

	content, err := afero.ReadFile(fs, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)

	content, err = afero.ReadFile(fs, "/dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), content)
}

func TestFarFilesystemReadAt(t *testing.T) {
	fs := newTestFilesystem(t)

	file, err := fs.Open("dir/sub/c.txt")
	require.NoError(t, err)
	defer file.Close()

	buffer := make([]byte, 2)
	n, err := file.ReadAt(buffer, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("ep"), buffer)
}

func TestFarFilesystemStat(t *testing.T) {
	fs := newTestFilesystem(t)

	info, err := fs.Stat("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())

	info, err = fs.Stat("dir")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFarFilesystemReaddir(t *testing.T) {
	fs := newTestFilesystem(t)

	root, err := fs.Open("/")
	require.NoError(t, err)
	names, err := root.Readdirnames(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "dir"}, names)

	dir, err := fs.Open("dir")
	require.NoError(t, err)
	infos, err := dir.Readdir(0)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "b.txt", infos[0].Name())
	assert.Equal(t, int64(3), infos[0].Size())
	assert.Equal(t, "sub", infos[1].Name())
	assert.True(t, infos[1].IsDir())
}

func TestFarFilesystemIsReadOnly(t *testing.T) {
	fs := newTestFilesystem(t)

	_, err := fs.Create("new.txt")
	assert.Error(t, err)

	assert.Error(t, fs.Mkdir("newdir", 0755))
	assert.Error(t, fs.Remove("a.txt"))

	_, err = fs.OpenFile("a.txt", os.O_WRONLY, 0644)
	assert.Error(t, err)
}

func TestFarFilesystemMissingFile(t *testing.T) {
	fs := newTestFilesystem(t)

	_, err := fs.Open("missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
