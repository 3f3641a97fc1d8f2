package far

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/spf13/afero"
)

// readerBuffer wraps an open archive handle with offset-based field readers.
// All reads are positional (ReadAt), never cursor-based, so independent
// callers can share one buffer without coordinating a stream position.
type readerBuffer struct {
	file afero.File
	size int64
}

func newReader(file afero.File) (*readerBuffer, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return &readerBuffer{file: file, size: info.Size()}, nil
}

func (r *readerBuffer) ReadAt(p []byte, off int64) (n int, err error) {
	return r.file.ReadAt(p, off)
}

func (r *readerBuffer) Close() error {
	return r.file.Close()
}

// readPrimitive reads exactly byteCount bytes at offset and converts them to
// the requested kind: a UTF-8 string or an unsigned little-endian integer.
func (r *readerBuffer) readPrimitive(offset int64, byteCount int, kind ConversionKind) (interface{}, error) {
	switch kind {
	case KindString, KindInt:
	default:
		return nil, errors.WrapPrefix(ErrUnsupportedConversion, kind.String(), 0)
	}

	buffer, err := r.readRange(offset, int64(byteCount))
	if err != nil {
		return nil, err
	}

	if kind == KindString {
		return string(buffer), nil
	}
	return decodeUintLE(buffer), nil
}

func (r *readerBuffer) readUint32(offset int64) (uint32, error) {
	value, err := r.readPrimitive(offset, 4, KindInt)
	if err != nil {
		return 0, err
	}
	return uint32(value.(uint64)), nil
}

func (r *readerBuffer) readUTF8(offset int64, byteCount int) (string, error) {
	value, err := r.readPrimitive(offset, byteCount, KindString)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// readRange reads exactly length bytes starting at offset. A short read is a
// structural failure of the archive, not a recoverable condition.
func (r *readerBuffer) readRange(offset, length int64) ([]byte, error) {
	buffer := make([]byte, length)
	n, err := r.file.ReadAt(buffer, offset)
	if int64(n) == length {
		return buffer, nil
	}
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, errors.WrapPrefix(ErrTruncatedRead,
			"archive ends inside a declared field", 0)
	}
	return nil, errors.Wrap(err, 0)
}

// decodeUintLE decodes up to eight bytes as an unsigned little-endian
// integer.
func decodeUintLE(buffer []byte) uint64 {
	value := uint64(0)
	for i := len(buffer) - 1; i >= 0; i-- {
		value = value<<8 | uint64(buffer[i])
	}
	return value
}
