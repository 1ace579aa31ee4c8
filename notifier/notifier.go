// Package notifier implements the Change Notifier of spec.md §4.6
// (component F): synchronous, in-process fan-out of a fresh
// per-protocol dictionary to every registered listener, grounded on
// the teacher's parseAndPublish (there: an MQTT publish per topic
// after a merge pass; here: a listener callback per protocol after an
// extraction pass).
package notifier

import (
	"sync"

	"DecoderCore/dictionary"
)

// ActiveDecoderDictionaryListener is notified once per protocol every
// time a fresh dictionary is published, matching
// IActiveDecoderDictionaryListener::onChangeOfActiveDictionary in the
// original.
type ActiveDecoderDictionaryListener interface {
	OnChangeOfActiveDictionary(dict dictionary.Dictionary, protocol dictionary.Protocol)
}

// Notifier holds the current set of registered listeners and fans
// published dictionaries out to all of them, synchronously, before
// Publish returns.
type Notifier struct {
	mu        sync.RWMutex
	listeners []ActiveDecoderDictionaryListener
}

// New returns an empty notifier.
func New() *Notifier {
	return &Notifier{}
}

// Register adds l to the set of listeners notified by future
// Publish calls.
func (n *Notifier) Register(l ActiveDecoderDictionaryListener) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.listeners = append(n.listeners, l)
}

// Publish notifies every registered listener of entry, in registration
// order. entry.Dictionary is nil when entry.Protocol had no data this
// pass — listeners are still notified so they can reconfigure when
// their dictionary disappears (spec.md §1/§4.6). The protocol always
// comes from entry itself, never from entry.Dictionary.Protocol(),
// since that would panic on the disabled case. Dictionaries are
// immutable once published (spec.md §9 design note: "avoid in-place
// mutation of published dictionaries"); this method never mutates one.
func (n *Notifier) Publish(entry dictionary.Entry) {
	n.mu.RLock()
	listeners := make([]ActiveDecoderDictionaryListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, l := range listeners {
		l.OnChangeOfActiveDictionary(entry.Dictionary, entry.Protocol)
	}
}

// PublishAll publishes every entry in entries in order, matching
// decoderDictionaryUpdater's iteration over the whole protocol map —
// including protocols whose Dictionary is nil (property P9: every
// registered consumer is invoked once per protocol per pass).
func (n *Notifier) PublishAll(entries []dictionary.Entry) {
	for _, entry := range entries {
		n.Publish(entry)
	}
}
