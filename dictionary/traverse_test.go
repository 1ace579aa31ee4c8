package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"DecoderCore/signalid"
)

type fakeTypeSource map[uint32]ComplexDataType

func (f fakeTypeSource) ComplexType(id uint32) (ComplexDataType, bool) {
	t, ok := f[id]
	return t, ok
}

// buildROS2Graph mirrors Scenario 5 of spec.md §8: T1 is an Array of
// T2; T2 is a Struct{T3, T4}; T3, T4 are primitive.
func buildROS2Graph() fakeTypeSource {
	return fakeTypeSource{
		1: {Kind: Array, ElementTypeID: 2},
		2: {Kind: Struct, OrderedMemberTypeIDs: []uint32{3, 4}},
		3: {Kind: Primitive},
		4: {Kind: Primitive},
	}
}

func TestPopulateComplexTypeMapClosure(t *testing.T) {
	entry := newComplexDataMessageFormat()
	PopulateComplexTypeMap(entry, 1, buildROS2Graph(), MaxComplexTypes, nil)

	assert.Len(t, entry.ComplexTypeMap, 4)
	assert.Contains(t, entry.ComplexTypeMap, uint32(1))
	assert.Contains(t, entry.ComplexTypeMap, uint32(2))
	assert.Contains(t, entry.ComplexTypeMap, uint32(3))
	assert.Contains(t, entry.ComplexTypeMap, uint32(4))
}

func TestPopulateComplexTypeMapBudget(t *testing.T) {
	entry := newComplexDataMessageFormat()
	PopulateComplexTypeMap(entry, 1, buildROS2Graph(), 2, nil)

	assert.LessOrEqual(t, len(entry.ComplexTypeMap), 2)
}

func TestPopulateComplexTypeMapInvalidTypeWarnsAndContinues(t *testing.T) {
	source := fakeTypeSource{
		1: {Kind: Struct, OrderedMemberTypeIDs: []uint32{2, 3}},
		3: {Kind: Primitive},
		// type 2 deliberately missing -> Invalid
	}

	var warned []uint32
	entry := newComplexDataMessageFormat()
	PopulateComplexTypeMap(entry, 1, source, MaxComplexTypes, func(id uint32) {
		warned = append(warned, id)
	})

	assert.Equal(t, []uint32{2}, warned)
	assert.Contains(t, entry.ComplexTypeMap, uint32(1))
	assert.Contains(t, entry.ComplexTypeMap, uint32(3))
	assert.NotContains(t, entry.ComplexTypeMap, uint32(2))
}

func TestPutComplexSignalFirstRootWins(t *testing.T) {
	entry := newComplexDataMessageFormat()
	source := buildROS2Graph()

	PutComplexSignal(entry, 200, signalid.InternalBitmask|1, signalid.Path{0}, 1, source, MaxComplexTypes, nil)
	// A later reference claims a different root type; must be ignored.
	PutComplexSignal(entry, 200, signalid.InternalBitmask|2, signalid.Path{1}, 99, source, MaxComplexTypes, nil)

	assert.Equal(t, uint32(1), entry.RootTypeID)
}

func TestPutComplexSignalCollectRawAndPaths(t *testing.T) {
	entry := newComplexDataMessageFormat()
	source := buildROS2Graph()

	// Scheme A: whole signal.
	PutComplexSignal(entry, 200, 200, nil, 1, source, MaxComplexTypes, nil)
	// Scheme B: partial path.
	PutComplexSignal(entry, 200, signalid.InternalBitmask|2, signalid.Path{1}, 1, source, MaxComplexTypes, nil)

	assert.True(t, entry.CollectRaw)
	assert.Equal(t, []SignalPathAndPartialID{{Path: signalid.Path{1}, PartialID: signalid.InternalBitmask | 2}}, entry.SignalPaths)
}

func TestInsertSignalPathKeepsSortedOrder(t *testing.T) {
	entry := newComplexDataMessageFormat()
	entry.InsertSignalPath(signalid.Path{2}, 1)
	entry.InsertSignalPath(signalid.Path{0}, 2)
	entry.InsertSignalPath(signalid.Path{1, 5}, 3)
	entry.InsertSignalPath(signalid.Path{1}, 4)

	var paths []signalid.Path
	for _, p := range entry.SignalPaths {
		paths = append(paths, p.Path)
	}

	assert.Equal(t, []signalid.Path{{0}, {1}, {1, 5}, {2}}, paths)
}

func TestInsertSignalPathOrdersDuplicatesByPartialID(t *testing.T) {
	entry := newComplexDataMessageFormat()
	entry.InsertSignalPath(signalid.Path{0}, 5)
	entry.InsertSignalPath(signalid.Path{0}, 3)

	assert.Equal(t, signalid.ID(3), entry.SignalPaths[0].PartialID)
	assert.Equal(t, signalid.ID(5), entry.SignalPaths[1].PartialID)
}
