// Package signalid implements the signal identifier space described in
// spec.md §3/§4.1: a single uint32 space where the high bit tags a
// signal id as "partial" (a path inside a complex parent signal)
// rather than "full".
package signalid

// ID is a signal identifier as it appears on the wire and in decoder
// manifests. The most significant bit is the internal-signal-id
// bitmask: set means the id addresses a partial signal.
type ID uint32

// InternalBitmask is the high bit reserved to tag partial signal ids.
const InternalBitmask ID = 1 << 31

// Invalid is the sentinel signal id used when a partial id fails to
// resolve against a scheme's partial-signal table.
const Invalid ID = 0xFFFFFFFF

// Path is an ordered sequence of struct-member or array-element
// indices addressing a location inside a complex signal. The empty
// path references the whole signal.
type Path []uint32

// Equal reports whether two paths address the same location.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Less orders paths lexicographically, ascending. Used to keep
// signal_paths sorted per spec.md §3/§4.5/P6.
func (p Path) Less(other Path) bool {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if p[i] != other[i] {
			return p[i] < other[i]
		}
	}
	return len(p) < len(other)
}

// IsPartial reports whether id's high bit is set.
func IsPartial(id ID) bool {
	return id&InternalBitmask != 0
}

// PartialLookup resolves a partial signal id to its parent full signal
// id and the path inside that parent. Implementations are backed by a
// scheme's own partial-signal table (spec.md §3).
type PartialLookup interface {
	Resolve(id ID) (full ID, path Path, ok bool)
}

// Resolve looks up id in lookup when id is partial. For full ids it
// returns the id unchanged with an empty path. On a failed partial
// lookup it returns (Invalid, nil, false) — the caller must warn and
// skip the signal per spec.md §4.4.b/§7.1.
func Resolve(id ID, lookup PartialLookup) (ID, Path, bool) {
	if !IsPartial(id) {
		return id, nil, true
	}

	full, path, ok := lookup.Resolve(id)
	if !ok {
		return Invalid, nil, false
	}
	return full, path, true
}
