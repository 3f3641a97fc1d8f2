package far

// Field offsets of the fixed archive header.
const (
	signatureOffset      = 0x00
	versionOffset        = 0x08
	manifestOffsetOffset = 0x0c
)

// Header is the fixed-layout archive header. Signature and version are kept
// verbatim but carry no compatibility semantics: the format shipped with
// differing signature strings and no known version break, so both fields are
// informational only.
type Header struct {
	signature      string
	version        uint32
	manifestOffset uint32
}

func (h *Header) Signature() string {
	return h.signature
}

func (h *Header) Version() uint32 {
	return h.version
}

// ManifestOffset is the absolute byte offset of the manifest table, the
// point where the entry count and the entry records begin.
func (h *Header) ManifestOffset() uint32 {
	return h.manifestOffset
}

func readHeader(reader *readerBuffer) (*Header, error) {
	signature, err := reader.readUTF8(signatureOffset, BytesizeSignature)
	if err != nil {
		return nil, err
	}

	version, err := reader.readUint32(versionOffset)
	if err != nil {
		return nil, err
	}

	manifestOffset, err := reader.readUint32(manifestOffsetOffset)
	if err != nil {
		return nil, err
	}

	return &Header{
		signature:      signature,
		version:        version,
		manifestOffset: manifestOffset,
	}, nil
}
