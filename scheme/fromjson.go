package scheme

import (
	"encoding/json"
	"os"

	"DecoderCore/signalid"
)

// jsonDocument is the on-disk shape of schemes.json, this repository's
// own demonstration format for the inbound scheme set (spec.md §4.8:
// persistence/distribution of schemes proper is out of scope, this is
// only a local bootstrap read, in the same spirit as the teacher's own
// config.json/whitelist.json loaders).
type jsonDocument map[string]struct {
	CollectSignals []struct {
		SignalID uint32 `json:"signal_id"`
	} `json:"collect_signals"`

	CollectRawCANFrames []struct {
		FrameID       uint32 `json:"frame_id"`
		InterfaceName string `json:"interface_name"`
	} `json:"collect_raw_can_frames"`

	PartialSignals []struct {
		PartialSignalID uint32   `json:"partial_signal_id"`
		FullSignalID    uint32   `json:"full_signal_id"`
		Path            []uint32 `json:"path"`
	} `json:"partial_signals"`
}

// LoadJSONFile reads path and returns the enabled scheme set keyed by
// scheme id.
func LoadJSONFile(path string) (map[ID]*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadJSON(data)
}

// LoadJSON parses a schemes.json document into the enabled scheme set.
func LoadJSON(data []byte) (map[ID]*Scheme, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	schemes := make(map[ID]*Scheme, len(doc))
	for name, raw := range doc {
		s := &Scheme{
			PartialSignalTable: make(map[signalid.ID]PartialSignalInfo, len(raw.PartialSignals)),
		}

		for _, sig := range raw.CollectSignals {
			s.CollectSignalsList = append(s.CollectSignalsList, SignalInfo{SignalID: signalid.ID(sig.SignalID)})
		}

		for _, frame := range raw.CollectRawCANFrames {
			s.CollectRawCANFramesList = append(s.CollectRawCANFramesList, RawCANFrame{
				FrameID:       frame.FrameID,
				InterfaceName: frame.InterfaceName,
			})
		}

		for _, partial := range raw.PartialSignals {
			s.PartialSignalTable[signalid.ID(partial.PartialSignalID)] = PartialSignalInfo{
				FullSignalID: signalid.ID(partial.FullSignalID),
				Path:         signalid.Path(partial.Path),
			}
		}

		schemes[ID(name)] = s
	}

	return schemes, nil
}
