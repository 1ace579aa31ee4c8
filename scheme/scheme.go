// Package scheme implements the inbound collection-scheme contract of
// spec.md §6: the "intent" side of the join the extractor performs.
// Persistence, authentication and network distribution of schemes are
// explicit non-goals (spec.md §1/§12); this package only models the
// shape a scheme takes once it has already reached the process.
package scheme

import "DecoderCore/signalid"

// ID identifies one collection scheme among the enabled set.
type ID string

// SignalInfo is one entry of a scheme's collect_signals list.
type SignalInfo struct {
	SignalID signalid.ID
}

// RawCANFrame is one entry of a scheme's collect_raw_can_frames list.
type RawCANFrame struct {
	FrameID       uint32
	InterfaceName string
}

// PartialSignalInfo is the resolution target of a partial signal id:
// the parent full signal id and the path inside it.
type PartialSignalInfo struct {
	FullSignalID signalid.ID
	Path         signalid.Path
}

// Scheme is the inbound contract spec.md §6 describes.
type Scheme struct {
	CollectSignalsList      []SignalInfo
	CollectRawCANFramesList []RawCANFrame
	PartialSignalTable      map[signalid.ID]PartialSignalInfo
}

// CollectSignals implements the Scheme interface's collect_signals().
func (s *Scheme) CollectSignals() []SignalInfo {
	return s.CollectSignalsList
}

// CollectRawCANFrames implements collect_raw_can_frames().
func (s *Scheme) CollectRawCANFrames() []RawCANFrame {
	return s.CollectRawCANFramesList
}

// PartialSignalLookup implements partial_signal_lookup().
func (s *Scheme) PartialSignalLookup() map[signalid.ID]PartialSignalInfo {
	return s.PartialSignalTable
}

// Resolve implements signalid.PartialLookup against this scheme's own
// partial-signal table, letting a *Scheme be passed directly to
// signalid.Resolve.
func (s *Scheme) Resolve(id signalid.ID) (signalid.ID, signalid.Path, bool) {
	info, ok := s.PartialSignalTable[id]
	if !ok {
		return 0, nil, false
	}
	return info.FullSignalID, info.Path, true
}
