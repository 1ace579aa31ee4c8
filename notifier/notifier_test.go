package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"DecoderCore/dictionary"
)

type recordingListener struct {
	calls    []dictionary.Protocol
	dicts    []dictionary.Dictionary
}

func (r *recordingListener) OnChangeOfActiveDictionary(dict dictionary.Dictionary, protocol dictionary.Protocol) {
	r.calls = append(r.calls, protocol)
	r.dicts = append(r.dicts, dict)
}

func TestPublishNotifiesAllListeners(t *testing.T) {
	n := New()
	a := &recordingListener{}
	b := &recordingListener{}
	n.Register(a)
	n.Register(b)

	dict := dictionary.NewCANDecoderDictionary(dictionary.ProtocolCANRaw)
	n.Publish(dictionary.Entry{Protocol: dictionary.ProtocolCANRaw, Dictionary: dict})

	assert.Equal(t, []dictionary.Protocol{dictionary.ProtocolCANRaw}, a.calls)
	assert.Equal(t, []dictionary.Protocol{dictionary.ProtocolCANRaw}, b.calls)
}

func TestPublishAllPreservesOrder(t *testing.T) {
	n := New()
	l := &recordingListener{}
	n.Register(l)

	can := dictionary.NewCANDecoderDictionary(dictionary.ProtocolCANRaw)
	complexData := dictionary.NewComplexDataDecoderDictionary()

	n.PublishAll([]dictionary.Entry{
		{Protocol: dictionary.ProtocolCANRaw, Dictionary: can},
		{Protocol: dictionary.ProtocolOBD, Dictionary: nil},
		{Protocol: dictionary.ProtocolComplexData, Dictionary: complexData},
	})

	assert.Equal(t, []dictionary.Protocol{
		dictionary.ProtocolCANRaw,
		dictionary.ProtocolOBD,
		dictionary.ProtocolComplexData,
	}, l.calls)
}

func TestPublishNotifiesAbsentProtocolWithNilDictionary(t *testing.T) {
	n := New()
	l := &recordingListener{}
	n.Register(l)

	n.Publish(dictionary.Entry{Protocol: dictionary.ProtocolOBD, Dictionary: nil})

	assert.Equal(t, []dictionary.Protocol{dictionary.ProtocolOBD}, l.calls)
	assert.Nil(t, l.dicts[0])
}

func TestPublishWithNoListenersDoesNotPanic(t *testing.T) {
	n := New()
	assert.NotPanics(t, func() {
		n.Publish(dictionary.Entry{
			Protocol:   dictionary.ProtocolCANRaw,
			Dictionary: dictionary.NewCANDecoderDictionary(dictionary.ProtocolCANRaw),
		})
	})
}
