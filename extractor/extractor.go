// Package extractor implements the core algorithm of spec.md §4.4
// (component E): joining the enabled collection schemes against the
// decoder manifest to produce one decoder dictionary per protocol.
// It is transcribed from the teacher's domain of CAN/DBC decoding but
// its control flow is grounded directly on
// CollectionSchemeManager::decoderDictionaryExtractor in
// original_source/src/DecoderDictionaryExtractor.cpp.
package extractor

import (
	"sort"

	"github.com/sirupsen/logrus"

	"DecoderCore/base"
	"DecoderCore/caninterface"
	"DecoderCore/dictionary"
	"DecoderCore/manifest"
	"DecoderCore/scheme"
	"DecoderCore/signalid"
)

// Result is the per-protocol outcome of one extraction pass. A nil
// entry means no enabled scheme collects anything for that protocol —
// the protocol is disabled, matching the original's
// "initialize the map with nullptr for each protocol" step.
type Result struct {
	CANRaw      *dictionary.CANDecoderDictionary
	OBD         *dictionary.CANDecoderDictionary
	ComplexData *dictionary.ComplexDataDecoderDictionary
}

// Entries returns one dictionary.Entry per supported protocol
// (RAW_SOCKET, OBD, COMPLEX_DATA), in that order, with a nil
// Dictionary for any protocol no enabled scheme collects this pass.
// This mirrors decoderDictionaryUpdater (original lines 375-387),
// which iterates the full protocol map — initialized to nullptr for
// every protocol before extraction — and notifies every entry,
// present or absent, so property P9 ("every registered consumer is
// invoked once per protocol per pass") holds regardless of which
// protocols happen to have data this pass.
func (r Result) Entries() []dictionary.Entry {
	entries := make([]dictionary.Entry, 0, len(dictionary.SupportedProtocols))

	for _, protocol := range dictionary.SupportedProtocols {
		var dict dictionary.Dictionary
		switch protocol {
		case dictionary.ProtocolCANRaw:
			if r.CANRaw != nil {
				dict = r.CANRaw
			}
		case dictionary.ProtocolOBD:
			if r.OBD != nil {
				dict = r.OBD
			}
		case dictionary.ProtocolComplexData:
			if r.ComplexData != nil {
				dict = r.ComplexData
			}
		}
		entries = append(entries, dictionary.Entry{Protocol: protocol, Dictionary: dict})
	}

	return entries
}

// Extract runs one full pass over schemes and returns the resulting
// per-protocol dictionaries. It never mutates schemes or the manifest;
// it takes no locks of its own, relying on the caller to ensure no
// concurrent writer touches the manifest during this call (spec.md
// §5's "writer and extractor must not run concurrently").
func Extract(schemes map[scheme.ID]*scheme.Scheme, dm *manifest.Manifest, translator *caninterface.Translator, maxComplexTypes int) Result {
	var result Result

	// Matches the original's single per-scheme loop (signals, then that
	// scheme's raw frames, before moving to the next scheme): whichever
	// scheme references a CAN frame first sets its collect type, and
	// either later path (a signal reference finding an existing RAW
	// entry, or a raw-frame reference finding an existing DECODE entry)
	// upgrades it to RAW_AND_DECODE. Collect types and membership sets
	// do not depend on visiting order; the order of OBD signals merged
	// from several schemes and the first-seen root of a complex entry
	// do, so schemes are visited in ascending ID order to make every
	// pass over the same input produce the same end state.
	ids := make([]scheme.ID, 0, len(schemes))
	for id := range schemes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		s := schemes[id]
		for _, sigInfo := range s.CollectSignals() {
			extractSignal(&result, s, sigInfo, dm, translator, maxComplexTypes)
		}
		extractRawCANFrames(&result, s, translator)
	}

	return result
}

func extractSignal(result *Result, s *scheme.Scheme, sigInfo scheme.SignalInfo, dm *manifest.Manifest, translator *caninterface.Translator, maxComplexTypes int) {
	originalID := sigInfo.SignalID

	resolvedID, path, ok := signalid.Resolve(originalID, s)
	if !ok {
		base.Logger.WithField("signal_id", originalID).Warn("unknown partial signal id")
		return
	}

	protocol := dm.ProtocolOf(resolvedID)
	if protocol == dictionary.ProtocolInvalid {
		base.Logger.WithField("signal_id", resolvedID).Warn("invalid protocol for signal")
		return
	}

	switch protocol {
	case dictionary.ProtocolCANRaw:
		extractCANRawSignal(result, resolvedID, dm, translator)
	case dictionary.ProtocolOBD:
		// The OBD-side CanSignalFormat carries the pre-resolution id,
		// matching the original's use of signalInfo.signalID rather
		// than the resolved signalId here (see original lines 189/227).
		extractOBDSignal(result, resolvedID, originalID, dm)
	case dictionary.ProtocolComplexData:
		extractComplexSignal(result, resolvedID, originalID, path, dm, maxComplexTypes)
	default:
		base.Logger.WithFields(logrus.Fields{
			"signal_id": resolvedID,
			"protocol":  int(protocol),
		}).Error("unknown network protocol for signal")
	}
}

func extractCANRawSignal(result *Result, signalID signalid.ID, dm *manifest.Manifest, translator *caninterface.Translator) {
	rawFrameID, interfaceName, ok := dm.CANFrameOf(signalID)
	if !ok {
		base.Logger.WithField("signal_id", signalID).Warn("no CAN frame registered for signal")
		return
	}

	channelID := translator.ChannelIDOf(interfaceName)
	if channelID == dictionary.InvalidChannel {
		base.Logger.WithField("interface", interfaceName).Warn("invalid interface id provided")
		return
	}

	if result.CANRaw == nil {
		result.CANRaw = dictionary.NewCANDecoderDictionary(dictionary.ProtocolCANRaw)
	}
	dict := result.CANRaw

	dict.SignalIDsToCollect[signalID] = struct{}{}
	sub := dict.EnsureChannel(channelID)

	if method, exists := sub[rawFrameID]; !exists {
		sub[rawFrameID] = dictionary.CanMessageDecoderMethod{
			CollectType: dictionary.Decode,
			Format:      dm.CANMessageFormat(rawFrameID, interfaceName),
		}
	} else if method.CollectType == dictionary.Raw {
		method.CollectType = dictionary.RawAndDecode
		method.Format = dm.CANMessageFormat(rawFrameID, interfaceName)
		sub[rawFrameID] = method
	}
}

func extractOBDSignal(result *Result, resolvedID, originalID signalid.ID, dm *manifest.Manifest) {
	pidFormat, ok := dm.PIDFormat(resolvedID)
	if !ok {
		base.Logger.WithField("signal_id", resolvedID).Warn("no PID format registered for OBD signal")
		return
	}

	if result.OBD == nil {
		result.OBD = dictionary.NewCANDecoderDictionary(dictionary.ProtocolOBD)
	}
	dict := result.OBD

	dict.SignalIDsToCollect[resolvedID] = struct{}{}
	sub := dict.EnsureChannel(dictionary.OBDChannel)

	if _, exists := sub[pidFormat.PID]; !exists {
		sub[pidFormat.PID] = dictionary.CanMessageDecoderMethod{
			CollectType: dictionary.Decode,
			Format: dictionary.CanMessageFormat{
				MessageID:   pidFormat.PID,
				SizeInBytes: uint8(pidFormat.PidResponseLength),
			},
		}
	}

	method := sub[pidFormat.PID]
	method.Format.Signals = append(method.Format.Signals, dictionary.CanSignalFormat{
		SignalID:         originalID,
		FirstBitPosition: uint16(pidFormat.StartByte*dictionary.ByteSize + pidFormat.BitRightShift),
		SizeInBits:       uint16((pidFormat.ByteLength-1)*dictionary.ByteSize + pidFormat.BitMaskLength),
		Factor:           pidFormat.Scaling,
		Offset:           pidFormat.Offset,
	})
	sub[pidFormat.PID] = method
}

func extractComplexSignal(result *Result, resolvedID, originalID signalid.ID, path signalid.Path, dm *manifest.Manifest, maxComplexTypes int) {
	interfaceID, messageID, rootTypeID, ok := dm.ComplexSignalOf(resolvedID)
	if !ok || interfaceID == "" {
		base.Logger.WithField("signal_id", resolvedID).Warn("complex signal id has no registered interface")
		return
	}

	if result.ComplexData == nil {
		result.ComplexData = dictionary.NewComplexDataDecoderDictionary()
	}

	entry := result.ComplexData.EntryFor(interfaceID, messageID)
	warn := func(typeID uint32) {
		base.Logger.WithField("type_id", typeID).Error("invalid complex type id")
	}
	dictionary.PutComplexSignal(entry, resolvedID, originalID, path, rootTypeID, dm, maxComplexTypes, warn)
}

func extractRawCANFrames(result *Result, s *scheme.Scheme, translator *caninterface.Translator) {
	frames := s.CollectRawCANFrames()
	if len(frames) == 0 {
		return
	}

	if result.CANRaw == nil {
		result.CANRaw = dictionary.NewCANDecoderDictionary(dictionary.ProtocolCANRaw)
	}
	dict := result.CANRaw

	for _, frame := range frames {
		channelID := translator.ChannelIDOf(frame.InterfaceName)
		if channelID == dictionary.InvalidChannel {
			base.Logger.WithField("interface", frame.InterfaceName).Warn("invalid interface id provided")
			continue
		}

		sub := dict.EnsureChannel(channelID)
		method, exists := sub[frame.FrameID]
		if !exists {
			sub[frame.FrameID] = dictionary.CanMessageDecoderMethod{CollectType: dictionary.Raw}
			continue
		}

		if method.CollectType == dictionary.Decode {
			method.CollectType = dictionary.RawAndDecode
			sub[frame.FrameID] = method
		}
	}
}
