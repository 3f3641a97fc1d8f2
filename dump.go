package far

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/ugorji/go/codec"
)

type manifestDocument struct {
	ArchivePath   string          `codec:"archivePath"`
	Signature     string          `codec:"signature"`
	Version       uint32          `codec:"version"`
	NumberOfFiles uint32          `codec:"numberOfFiles"`
	Entries       []entryDocument `codec:"entries"`
}

type entryDocument struct {
	Name            string `codec:"fileName"`
	Length          uint32 `codec:"length"`
	SecondaryLength uint32 `codec:"secondaryLength"`
	FileOffset      uint32 `codec:"fileOffset"`
}

// WriteManifestJSON serializes the archive's header fields and manifest
// table as JSON, one sidecar document per archive.
func WriteManifestJSON(archive *Archive, w io.Writer) error {
	document := &manifestDocument{
		ArchivePath:   archive.archivePath,
		Signature:     archive.header.signature,
		Version:       archive.header.version,
		NumberOfFiles: archive.manifest.numberOfFiles,
		Entries:       make([]entryDocument, len(archive.manifest.entries)),
	}

	for i, entry := range archive.manifest.entries {
		document.Entries[i] = entryDocument{
			Name:            entry.fileName,
			Length:          entry.length,
			SecondaryLength: entry.secondaryLength,
			FileOffset:      entry.fileOffset,
		}
	}

	handle := new(codec.JsonHandle)
	handle.Indent = 2
	encoder := codec.NewEncoder(w, handle)
	if err := encoder.Encode(document); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}
