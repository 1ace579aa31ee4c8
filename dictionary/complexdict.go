package dictionary

import "DecoderCore/signalid"

// ComplexTypeKind discriminates the tagged ComplexDataType variant
// (spec.md §3: "Primitive | Array{...} | Struct{...} | Invalid").
type ComplexTypeKind int

const (
	Primitive ComplexTypeKind = iota
	Array
	Struct
	InvalidType
)

// ComplexDataType is a single node of the complex data-type graph.
// Types reference each other only through ids (never direct pointers,
// per spec.md §9's design note), so this struct carries plain uint32
// ids for its children.
type ComplexDataType struct {
	Kind ComplexTypeKind

	// ElementTypeID is populated when Kind == Array.
	ElementTypeID uint32

	// OrderedMemberTypeIDs is populated when Kind == Struct.
	OrderedMemberTypeIDs []uint32
}

// SignalPathAndPartialID pairs a path inside a complex signal with the
// partial signal id that addresses it (spec.md §3's signal_paths).
type SignalPathAndPartialID struct {
	Path      signalid.Path
	PartialID signalid.ID
}

// ComplexDataMessageFormat is one entry of the complex-data
// dictionary: everything needed to decode one interface/message pair.
type ComplexDataMessageFormat struct {
	SignalID       signalid.ID
	RootTypeID     uint32
	ComplexTypeMap map[uint32]ComplexDataType
	CollectRaw     bool
	SignalPaths    []SignalPathAndPartialID
}

// newComplexDataMessageFormat returns an entry with SignalID still at
// the "unassigned" sentinel, matching spec.md §3's "sentinel invalid
// until first assigned".
func newComplexDataMessageFormat() *ComplexDataMessageFormat {
	return &ComplexDataMessageFormat{
		SignalID:       signalid.Invalid,
		ComplexTypeMap: make(map[uint32]ComplexDataType),
	}
}

// InsertSignalPath inserts (path, partialID) into SignalPaths in
// sorted position, ascending lexicographically over the path then
// partial id (spec.md §3/P6). Duplicates are permitted, matching the
// original's behavior of never deduplicating on insert.
func (f *ComplexDataMessageFormat) InsertSignalPath(path signalid.Path, partialID signalid.ID) {
	entry := SignalPathAndPartialID{Path: path, PartialID: partialID}

	idx := 0
	for idx < len(f.SignalPaths) {
		existing := f.SignalPaths[idx]
		if path.Less(existing.Path) || (path.Equal(existing.Path) && partialID < existing.PartialID) {
			break
		}
		idx++
	}

	f.SignalPaths = append(f.SignalPaths, SignalPathAndPartialID{})
	copy(f.SignalPaths[idx+1:], f.SignalPaths[idx:])
	f.SignalPaths[idx] = entry
}

// ComplexDataDecoderDictionary is the two-level interface-id/message-id
// dictionary of spec.md §3.
type ComplexDataDecoderDictionary struct {
	ComplexMessageDecoderMethod map[string]map[string]*ComplexDataMessageFormat
}

// NewComplexDataDecoderDictionary returns an empty complex-data
// dictionary ready for mutation by the extractor.
func NewComplexDataDecoderDictionary() *ComplexDataDecoderDictionary {
	return &ComplexDataDecoderDictionary{
		ComplexMessageDecoderMethod: make(map[string]map[string]*ComplexDataMessageFormat),
	}
}

// Protocol implements Dictionary.
func (d *ComplexDataDecoderDictionary) Protocol() Protocol { return ProtocolComplexData }

// EntryFor returns the (interfaceID, messageID) entry, creating it
// (still unassigned) if this is the first reference.
func (d *ComplexDataDecoderDictionary) EntryFor(interfaceID, messageID string) *ComplexDataMessageFormat {
	sub, ok := d.ComplexMessageDecoderMethod[interfaceID]
	if !ok {
		sub = make(map[string]*ComplexDataMessageFormat)
		d.ComplexMessageDecoderMethod[interfaceID] = sub
	}

	entry, ok := sub[messageID]
	if !ok {
		entry = newComplexDataMessageFormat()
		sub[messageID] = entry
	}
	return entry
}
