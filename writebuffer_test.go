package far

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// writeBuffer builds archive images for tests. Production code never writes
// archives; the format is read-only here.
type writeBuffer struct {
	buffer bytes.Buffer
}

func (wb *writeBuffer) write(p []byte) {
	wb.buffer.Write(p)
}

func (wb *writeBuffer) writeUint32(value uint32) {
	wb.buffer.Write([]byte{
		byte(value),
		byte(value >> 8),
		byte(value >> 16),
		byte(value >> 24),
	})
}

func (wb *writeBuffer) writeUTF8(value string) {
	wb.buffer.WriteString(value)
}

func (wb *writeBuffer) bytes() []byte {
	return wb.buffer.Bytes()
}

type testMember struct {
	name    string
	content []byte
}

// buildArchive lays out a complete archive image: fixed header, member
// contents back to back, then the manifest table. The manifest offset in the
// header points past the contents.
func buildArchive(signature string, version uint32, members []testMember) []byte {
	contentBase := BytesizeArchiveHeader
	totalContent := uint32(0)
	for _, member := range members {
		totalContent += uint32(len(member.content))
	}
	manifestOffset := contentBase + totalContent

	wb := &writeBuffer{}
	wb.writeUTF8(signature)
	wb.writeUint32(version)
	wb.writeUint32(manifestOffset)

	for _, member := range members {
		wb.write(member.content)
	}

	wb.writeUint32(uint32(len(members)))
	offset := contentBase
	for _, member := range members {
		length := uint32(len(member.content))
		wb.writeUint32(length)
		wb.writeUint32(length)
		wb.writeUint32(offset)
		wb.writeUint32(uint32(len(member.name)))
		wb.writeUTF8(member.name)
		offset += length
	}

	return wb.bytes()
}

// writeTestArchive drops an archive image onto a fresh in-memory filesystem.
func writeTestArchive(t *testing.T, data []byte) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "archive.far"
	require.NoError(t, afero.WriteFile(fs, path, data, 0644))
	return fs, path
}

func newTestReaderBuffer(t *testing.T, data []byte) *readerBuffer {
	t.Helper()
	fs, path := writeTestArchive(t, data)
	file, err := fs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	reader, err := newReader(file)
	require.NoError(t, err)
	return reader
}
