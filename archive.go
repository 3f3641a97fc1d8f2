package far

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// Archive is a fully parsed FAR container: its header, its manifest and the
// path it was read from. It holds no open handle; extraction re-opens the
// file on demand.
type Archive struct {
	archivePath string
	fs          afero.Fs
	header      *Header
	manifest    *Manifest
}

func (a *Archive) Header() *Header {
	return a.header
}

func (a *Archive) Manifest() *Manifest {
	return a.manifest
}

func (a *Archive) ArchivePath() string {
	return a.archivePath
}

// List writes a human-readable member listing to w, one line per entry in
// archive order.
func (a *Archive) List(w io.Writer) {
	fmt.Fprintf(w, "%s: %s, version %d, %d files\n", a.archivePath,
		a.header.signature, a.header.version, a.manifest.numberOfFiles)
	for _, entry := range a.manifest.entries {
		fmt.Fprintf(w, "  %s [%s at offset %d]\n",
			entry.fileName, humanize.Bytes(uint64(entry.length)), entry.fileOffset)
	}
}
