package types

import "strings"

// Record is one row of an input report.
type Record struct {
	// Size is the file size in bytes, as written in the report. It is
	// carried through to the output reports, never computed on.
	Size string

	// Hash is the content hash, trimmed and lowercased so that comparisons
	// ignore case and surrounding whitespace.
	Hash string

	// Path is the file path, exactly as written in the report.
	Path string
}

// NewRecord builds a `Record` from raw report fields, normalizing the size
// and the hash. The path is kept verbatim.
func NewRecord(size, hash, path string) Record {
	return Record{
		Size: strings.TrimSpace(size),
		Hash: NormalizeHash(hash),
		Path: path,
	}
}

// NormalizeHash trims and lowercases a hash.
func NormalizeHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}

// Occurrence returns the (path, size) pair the record contributes to its
// hash group.
func (r *Record) Occurrence() Occurrence {
	return Occurrence{Path: r.Path, Size: r.Size}
}

// Occurrence is a single (path, size) pair observed for a hash.
type Occurrence struct {
	Path string
	Size string
}
