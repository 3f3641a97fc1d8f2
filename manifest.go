package far

import "github.com/go-errors/errors"

// Manifest is the parsed member table of one archive. It is constructed
// once per archive-open, preserves archive order and is immutable afterward.
type Manifest struct {
	numberOfFiles uint32
	entries       []*Entry
}

// EntryCount returns the declared number of members.
func (m *Manifest) EntryCount() uint32 {
	return m.numberOfFiles
}

// Entries returns the members in archive order. The returned slice is shared
// and must not be modified.
func (m *Manifest) Entries() []*Entry {
	return m.entries
}

// FindEntryByName returns the first entry whose normalized name equals name
// exactly. The format does not require unique names; among duplicates the
// entry earliest in archive order wins. Returns ErrEntryNotFound when no
// entry matches.
func (m *Manifest) FindEntryByName(name string) (*Entry, error) {
	for _, entry := range m.entries {
		if entry.fileName == name {
			return entry, nil
		}
	}
	return nil, errors.WrapPrefix(ErrEntryNotFound, name, 0)
}
