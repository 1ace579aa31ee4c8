package signalid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapLookup map[ID]struct {
	full ID
	path Path
}

func (m mapLookup) Resolve(id ID) (ID, Path, bool) {
	v, ok := m[id]
	if !ok {
		return 0, nil, false
	}
	return v.full, v.path, true
}

func TestIsPartial(t *testing.T) {
	assert.False(t, IsPartial(7))
	assert.True(t, IsPartial(InternalBitmask|1))
}

func TestResolveFullPassesThrough(t *testing.T) {
	id, path, ok := Resolve(7, mapLookup{})
	assert.True(t, ok)
	assert.Equal(t, ID(7), id)
	assert.Empty(t, path)
}

func TestResolvePartialHit(t *testing.T) {
	lookup := mapLookup{
		InternalBitmask | 1: {full: 200, path: Path{0, 15, 1}},
	}
	id, path, ok := Resolve(InternalBitmask|1, lookup)
	assert.True(t, ok)
	assert.Equal(t, ID(200), id)
	assert.Equal(t, Path{0, 15, 1}, path)
}

func TestResolvePartialMiss(t *testing.T) {
	id, path, ok := Resolve(InternalBitmask|9, mapLookup{})
	assert.False(t, ok)
	assert.Equal(t, Invalid, id)
	assert.Nil(t, path)
}

func TestPathLess(t *testing.T) {
	assert.True(t, Path{0, 1}.Less(Path{0, 2}))
	assert.True(t, Path{0}.Less(Path{0, 0}))
	assert.False(t, Path{1}.Less(Path{0, 9}))
}

func TestPathEqual(t *testing.T) {
	assert.True(t, Path{1, 2}.Equal(Path{1, 2}))
	assert.False(t, Path{1, 2}.Equal(Path{1, 3}))
	assert.False(t, Path{1}.Equal(Path{1, 2}))
}
