package manifest

import (
	"DecoderCore/dbc"
	"DecoderCore/dictionary"
	"DecoderCore/signalid"
)

// FromDBC walks a parsed Vector DBC document and registers one full
// signal id per SG_ line, together with the CAN message format for
// its frame. This is component B's CAN-side bootstrap: spec.md §3
// leaves manifest population external to the core ("no wire format is
// mandated"), and the teacher already owns exactly this parsing
// concern for its own decoding path (dbc.Parser).
//
// Signal ids are assigned deterministically as (CAN id << 16 | signal
// ordinal within its frame); this scheme is local to the loader, not
// part of the wire contract spec.md defines, since the spec leaves
// signal-id assignment to whatever populates the manifest.
func FromDBC(m *Manifest, doc *dbc.DbcVO, interfaceName string) map[string]signalid.ID {
	assigned := make(map[string]signalid.ID)

	for canID, boVO := range doc.BoVoMap {
		format := dictionary.CanMessageFormat{
			MessageID:   uint32(canID),
			SizeInBytes: uint8(boVO.DataLenth),
		}

		for ordinal, name := range boVO.OrderedSignals {
			sgVO, ok := boVO.SgVoMap[name]
			if !ok {
				continue
			}

			id := signalid.ID(canID<<16 | uint64(ordinal))
			assigned[boVO.CanName+"."+name] = id

			m.RegisterCANSignal(id, uint32(canID), interfaceName)
			format.Signals = append(format.Signals, dictionary.CanSignalFormat{
				SignalID:         id,
				FirstBitPosition: uint16(sgVO.StartBit),
				SizeInBits:       uint16(sgVO.BitWidth),
				Factor:           sgVO.Factor,
				Offset:           float64(sgVO.Offsets),
			})
		}

		m.RegisterCANMessageFormat(uint32(canID), interfaceName, format)
	}

	return assigned
}
