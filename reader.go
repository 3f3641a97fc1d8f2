package far

import (
	"strings"
	"unicode/utf8"

	"github.com/go-errors/errors"
	"github.com/spf13/afero"
)

// Reader parses FAR archives into their in-memory manifest representation.
// Parsing only reads; the archive handle is opened for the duration of the
// parse and released before any extraction happens.
type Reader struct {
	fs afero.Fs
}

func NewReader() *Reader {
	return &Reader{fs: afero.NewOsFs()}
}

// NewReaderWithFs parses archives living on the given filesystem.
func NewReaderWithFs(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// ReadArchive opens the archive, parses the header and the full manifest
// table and returns the result. Any structural failure aborts the whole
// parse: entry boundaries cannot be recovered once a field read goes wrong,
// so a partially parsed manifest is never returned.
func (r *Reader) ReadArchive(archivePath string) (*Archive, error) {
	reader, err := r.createReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	manifest, err := r.readManifest(reader, int64(header.manifestOffset))
	if err != nil {
		return nil, err
	}

	return &Archive{
		archivePath: archivePath,
		fs:          r.fs,
		header:      header,
		manifest:    manifest,
	}, nil
}

func (r *Reader) readManifest(reader *readerBuffer, offset int64) (*Manifest, error) {
	numberOfFiles, err := reader.readUint32(offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	entries := make([]*Entry, numberOfFiles)
	for i := uint32(0); i < numberOfFiles; i++ {
		entry, err := r.readEntry(reader, offset)
		if err != nil {
			return nil, err
		}

		entries[i] = entry
		offset += int64(BytesizeEntryFixed) + int64(entry.fileNameLength)
	}

	return &Manifest{
		numberOfFiles: numberOfFiles,
		entries:       entries,
	}, nil
}

func (r *Reader) readEntry(reader *readerBuffer, offset int64) (*Entry, error) {
	length, err := reader.readUint32(offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	secondaryLength, err := reader.readUint32(offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	fileOffset, err := reader.readUint32(offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	fileNameLength, err := reader.readUint32(offset)
	if err != nil {
		return nil, err
	}
	offset += 4

	nameBytes, err := reader.readRange(offset, int64(fileNameLength))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(nameBytes) {
		return nil, errors.WrapPrefix(ErrMalformedEntry,
			"entry name is not valid UTF-8", 0)
	}

	fileName := normalizeName(string(nameBytes))
	if fileName == "" {
		return nil, errors.WrapPrefix(ErrMalformedEntry, "entry name is empty", 0)
	}

	if int64(fileOffset)+int64(length) > reader.size {
		return nil, errors.WrapPrefix(ErrTruncatedRead,
			"entry content range exceeds archive size", 0)
	}

	return &Entry{
		length:          length,
		secondaryLength: secondaryLength,
		fileOffset:      fileOffset,
		fileNameLength:  fileNameLength,
		fileName:        fileName,
	}, nil
}

func (r *Reader) createReader(archivePath string) (*readerBuffer, error) {
	file, err := r.fs.Open(archivePath)
	if err != nil {
		return nil, errors.WrapPrefix(err, "cannot open archive for reading", 0)
	}
	reader, err := newReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return reader, nil
}

// normalizeName rewrites backslash separators to forward slashes. Archives
// written on Windows store DOS-style paths; extraction and lookup always see
// the slash form. Normalization is idempotent.
func normalizeName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
