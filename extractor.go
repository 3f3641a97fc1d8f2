package far

import (
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Extractor realizes an archive's members as files on a destination
// filesystem. A failure on a single member is reported and skipped so that a
// batch extracts as many members as possible; only failing to open the
// archive itself aborts the run.
type Extractor struct {
	destFs afero.Fs
	log    *logrus.Logger
}

// NewExtractor creates an extractor writing to destFs. A nil destFs falls
// back to the OS filesystem, a nil log to the standard logrus logger.
func NewExtractor(destFs afero.Fs, log *logrus.Logger) *Extractor {
	if destFs == nil {
		destFs = afero.NewOsFs()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{destFs: destFs, log: log}
}

// ExtractAll writes every member of the archive below outputRoot in manifest
// order, reusing a single archive handle for all content reads. Per-member
// failures are logged and do not abort the remaining members.
func (e *Extractor) ExtractAll(archive *Archive, outputRoot string) error {
	reader, err := e.openArchive(archive)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, entry := range archive.manifest.entries {
		if err := e.extractEntry(entry, outputRoot, reader); err != nil {
			e.log.WithFields(logrus.Fields{
				"file":  entry.fileName,
				"cause": err,
			}).Warn("skipping member, extraction failed")
		}
	}
	return nil
}

// ExtractNamed extracts the single member matching name exactly. Unlike the
// batch path, any failure is returned to the caller.
func (e *Extractor) ExtractNamed(archive *Archive, name, outputRoot string) error {
	entry, err := archive.manifest.FindEntryByName(name)
	if err != nil {
		return err
	}

	reader, err := e.openArchive(archive)
	if err != nil {
		return err
	}
	defer reader.Close()

	return e.extractEntry(entry, outputRoot, reader)
}

func (e *Extractor) extractEntry(entry *Entry, outputRoot string, reader *readerBuffer) error {
	destPath, err := resolveDestination(outputRoot, entry.fileName)
	if err != nil {
		return err
	}

	buffer, err := reader.readRange(int64(entry.fileOffset), int64(entry.length))
	if err != nil {
		return err
	}

	if err := e.destFs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrap(err, 0)
	}

	e.log.Debugf("extracting %s (%d bytes at offset %d)",
		entry.fileName, entry.length, entry.fileOffset)

	out, err := e.destFs.Create(destPath)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	_, werr := out.Write(buffer)
	cerr := out.Close()
	if werr != nil {
		return errors.Wrap(werr, 0)
	}
	if cerr != nil {
		return errors.Wrap(cerr, 0)
	}
	return nil
}

func (e *Extractor) openArchive(archive *Archive) (*readerBuffer, error) {
	file, err := archive.fs.Open(archive.archivePath)
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

// resolveDestination joins the output root with a normalized member name and
// rejects names that would land outside the root.
func resolveDestination(outputRoot, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) {
		return "", errors.WrapPrefix(ErrMalformedEntry,
			"entry name is an absolute path", 0)
	}

	rel = filepath.Clean(rel)
	if rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.WrapPrefix(ErrMalformedEntry,
			"entry name escapes the output root", 0)
	}

	return filepath.Join(outputRoot, rel), nil
}
