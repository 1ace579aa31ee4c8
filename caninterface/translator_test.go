package caninterface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"DecoderCore/dictionary"
)

func TestChannelIDOfUnknownIsInvalid(t *testing.T) {
	tr := New()
	assert.Equal(t, dictionary.InvalidChannel, tr.ChannelIDOf("can0"))
}

func TestRegisterAssignsStableID(t *testing.T) {
	tr := New()
	id1 := tr.Register("can0")
	id2 := tr.Register("can0")
	assert.Equal(t, id1, id2)
}

func TestRegisterAssignsDistinctIDs(t *testing.T) {
	tr := New()
	can0 := tr.Register("can0")
	can1 := tr.Register("can1")
	assert.NotEqual(t, can0, can1)
}

func TestRegisterWithIDOverridesNumbering(t *testing.T) {
	tr := New()
	tr.RegisterWithID("can0", dictionary.ChannelID(3))
	assert.Equal(t, dictionary.ChannelID(3), tr.ChannelIDOf("can0"))
}
