// Package far reads FAR archive containers, the asset packaging format used
// by The Sims. A FAR file starts with a fixed header pointing at a manifest
// table; each manifest entry carries the offset and length of one packed
// member. The package parses the manifest into an immutable in-memory table
// and extracts members to a target directory or serves them through a
// read-only afero filesystem.
package far

// SignatureFAR is the signature found in retail archives. The header keeps
// whatever signature the file declares; no strict match is performed since
// variants of the format ship with differing signature strings.
const SignatureFAR = "FAR!byAZ"

const (
	// BytesizeSignature is the byte length of the header signature field.
	BytesizeSignature = 8

	// BytesizeArchiveHeader covers signature, version and manifest offset.
	BytesizeArchiveHeader = uint32(8 + 4 + 4)

	// BytesizeEntryFixed covers the four fixed uint32 fields of a manifest
	// entry, excluding the variable-length name.
	BytesizeEntryFixed = uint32(4 + 4 + 4 + 4)
)

// ConversionKind selects how raw archive bytes are interpreted by the
// low-level primitive reader.
type ConversionKind uint8

func (ck ConversionKind) String() string {
	switch ck {
	case KindString:
		return "utf8-string"

	case KindInt:
		return "uint-little-endian"

	default:
		return "unsupported"
	}
}

const (
	KindString ConversionKind = 0x00
	KindInt    ConversionKind = 0x01
)
