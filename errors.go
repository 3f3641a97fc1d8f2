package far

import "github.com/go-errors/errors"

// Error kinds surfaced by parsing and extraction. Parse-time failures are
// fatal for the archive: entry boundaries cannot be recovered once a field
// read goes wrong, so a partially parsed manifest is never returned.
var (
	// ErrTruncatedRead reports fewer bytes available than a field declares.
	ErrTruncatedRead = errors.New("truncated read, fewer bytes available than declared")

	// ErrMalformedEntry reports a manifest entry that cannot be decoded,
	// such as name bytes that are not valid UTF-8 or an empty name.
	ErrMalformedEntry = errors.New("malformed manifest entry")

	// ErrUnsupportedConversion reports a primitive read with an unknown
	// conversion kind. This is a programming error, not a data error.
	ErrUnsupportedConversion = errors.New("unsupported conversion kind")

	// ErrEntryNotFound reports a name lookup with no matching entry.
	ErrEntryNotFound = errors.New("file name not found in manifest")
)
