package far

import (
	"io"
	"sync/atomic"
)

// Entry is one archive-member descriptor from the manifest table. Entries
// are immutable once parsed; both length fields are kept verbatim because
// their relationship in real archives is unconfirmed.
type Entry struct {
	length          uint32
	secondaryLength uint32
	fileOffset      uint32
	fileNameLength  uint32
	fileName        string
}

// Length is the size in bytes of the member's content.
func (e *Entry) Length() uint32 {
	return e.length
}

// SecondaryLength is the second length field of the record. It is not known
// whether it ever differs from Length; it is exposed as an opaque value and
// never used to size reads.
func (e *Entry) SecondaryLength() uint32 {
	return e.secondaryLength
}

// FileOffset is the absolute byte offset of the member's content inside the
// archive.
func (e *Entry) FileOffset() uint32 {
	return e.fileOffset
}

// FileNameLength is the declared byte length of the name field.
func (e *Entry) FileNameLength() uint32 {
	return e.fileNameLength
}

// Name is the member's path, normalized to forward slashes.
func (e *Entry) Name() string {
	return e.fileName
}

// newReader returns an independent reader over the member's content range.
// Readers share the archive handle but keep their own cursor, all access
// going through positional reads.
func (e *Entry) newReader(reader *readerBuffer) *entryReader {
	return &entryReader{
		entry:  e,
		reader: reader,
	}
}

type entryReader struct {
	entry  *Entry
	reader *readerBuffer
	offset int64
}

func (er *entryReader) Read(p []byte) (n int, err error) {
	remaining := int64(er.entry.length) - er.offset
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = er.reader.ReadAt(p, er.offset+int64(er.entry.fileOffset))
	if err != nil && err != io.EOF {
		return 0, err
	}

	er.offset += int64(n)
	return n, nil
}

func (er *entryReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(er.entry.length) {
		return 0, io.EOF
	}
	if remaining := int64(er.entry.length) - off; int64(len(p)) > remaining {
		n, err = er.reader.ReadAt(p[:remaining], off+int64(er.entry.fileOffset))
		if err == nil {
			err = io.EOF
		}
		return n, err
	}
	return er.reader.ReadAt(p, off+int64(er.entry.fileOffset))
}

func (er *entryReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		atomic.StoreInt64(&er.offset, offset)
	case io.SeekCurrent:
		er.offset += offset
	case io.SeekEnd:
		er.offset = int64(er.entry.length) + offset
	}
	return er.offset, nil
}
