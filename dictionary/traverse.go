package dictionary

import "DecoderCore/signalid"

// ComplexTypeSource resolves a complex type id to its definition. It
// is the traversal-facing slice of the decoder manifest (spec.md §3's
// complex_type(type_id)).
type ComplexTypeSource interface {
	ComplexType(id uint32) (ComplexDataType, bool)
}

// TraversalWarner receives a message when the traversal hits an
// invalid type id (spec.md §7, defect class 6). Implementations
// typically forward to base.Logger; a nil warner silently drops the
// message.
type TraversalWarner func(typeID uint32)

// PopulateComplexTypeMap performs the bounded transitive closure of
// spec.md §4.5 over entry.ComplexTypeMap, rooted at rootTypeID, using
// an explicit stack (never recursion, so stack depth is bounded
// regardless of graph shape — spec.md §9 design note) and a budget of
// maxTypes. This is only ever called once per entry, by
// PutComplexSignal, on the first reference to a given
// (interface, message) pair.
func PopulateComplexTypeMap(entry *ComplexDataMessageFormat, rootTypeID uint32, source ComplexTypeSource, maxTypes int, warn TraversalWarner) {
	stack := []uint32{rootTypeID}
	budget := maxTypes

	for budget > 0 && len(stack) > 0 {
		budget--

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := entry.ComplexTypeMap[c]; seen {
			continue
		}

		t, ok := source.ComplexType(c)
		if !ok || t.Kind == InvalidType {
			if warn != nil {
				warn(c)
			}
			continue
		}

		entry.ComplexTypeMap[c] = t

		switch t.Kind {
		case Array:
			stack = append(stack, t.ElementTypeID)
		case Struct:
			stack = append(stack, t.OrderedMemberTypeIDs...)
		}
	}
}

// PutComplexSignal is the entry point used by the extractor for every
// COMPLEX_DATA signal reference (spec.md §4.5). On the first reference
// to entry it populates SignalID/RootTypeID and walks the type graph;
// on every reference (first or later) it records the path/collect-raw
// contribution of this particular scheme signal.
func PutComplexSignal(entry *ComplexDataMessageFormat, resolvedSignalID signalid.ID, referencedSignalID signalid.ID, path signalid.Path, rootTypeID uint32, source ComplexTypeSource, maxTypes int, warn TraversalWarner) {
	if entry.SignalID == signalid.Invalid {
		entry.SignalID = resolvedSignalID
		entry.RootTypeID = rootTypeID
		PopulateComplexTypeMap(entry, rootTypeID, source, maxTypes, warn)
	}

	if len(path) == 0 {
		entry.CollectRaw = true
		return
	}

	entry.InsertSignalPath(path, referencedSignalID)
}
