// Package caninterface implements the CAN Interface Translator of
// spec.md §3/§4.2 (component C): a bijection between interface name
// strings and a compact numeric channel id.
package caninterface

import (
	"sync"

	"DecoderCore/dictionary"
)

// Translator is a mutex-protected name->id registration table, the
// same shape as the teacher's whitelist.WhiteList: a plain map guarded
// by a sync.RWMutex, written once at startup (or whenever interfaces
// are (re)discovered) and read many times per extraction pass.
type Translator struct {
	mu       sync.RWMutex
	channels map[string]dictionary.ChannelID
	next     dictionary.ChannelID
}

// New returns an empty translator.
func New() *Translator {
	return &Translator{
		channels: make(map[string]dictionary.ChannelID),
	}
}

// Register assigns name a channel id if it does not already have one,
// and returns the (possibly pre-existing) id.
func (t *Translator) Register(name string) dictionary.ChannelID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.channels[name]; ok {
		return id
	}

	id := t.next
	t.next++
	t.channels[name] = id
	return id
}

// RegisterWithID assigns name a specific channel id, overriding any
// automatic numbering. Used when interface layout is known in
// advance (e.g. loaded from vehicle configuration).
func (t *Translator) RegisterWithID(name string, id dictionary.ChannelID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.channels[name] = id
}

// ChannelIDOf implements channel_id_of(interface_name). Extraction is
// read-only against the translator (spec.md §4.2/§5): unknown names
// return the InvalidChannel sentinel rather than an error.
func (t *Translator) ChannelIDOf(name string) dictionary.ChannelID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.channels[name]
	if !ok {
		return dictionary.InvalidChannel
	}
	return id
}
