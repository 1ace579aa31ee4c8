package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"DecoderCore/dictionary"
	"DecoderCore/signalid"
)

// jsonDocument is this repository's own bootstrap format for the
// parts of the decoder manifest a DBC file cannot express: OBD PID
// formats and the complex data-type graph (spec.md §3 leaves the wire
// format for these entirely external). It is loaded once at startup,
// off the hot path, so stdlib encoding/json is used here rather than
// jsoniter (see notifier/mqtt.go for the hot-path encoder).
type jsonDocument struct {
	OBDSignals []struct {
		SignalID          uint32  `json:"signal_id"`
		PID               uint32  `json:"pid"`
		StartByte         int     `json:"start_byte"`
		BitRightShift     int     `json:"bit_right_shift"`
		ByteLength        int     `json:"byte_length"`
		BitMaskLength     int     `json:"bit_mask_length"`
		Scaling           float64 `json:"scaling"`
		Offset            float64 `json:"offset"`
		PidResponseLength int     `json:"pid_response_length"`
	} `json:"obd_signals"`

	ComplexSignals []struct {
		SignalID    uint32 `json:"signal_id"`
		InterfaceID string `json:"interface_id"`
		MessageID   string `json:"message_id"`
		RootTypeID  uint32 `json:"root_type_id"`
	} `json:"complex_signals"`

	ComplexTypes []struct {
		TypeID        uint32   `json:"type_id"`
		Kind          string   `json:"kind"` // "primitive", "array", "struct"
		ElementTypeID uint32   `json:"element_type_id,omitempty"`
		MemberTypeIDs []uint32 `json:"member_type_ids,omitempty"`
	} `json:"complex_types"`
}

// LoadJSONFile reads path and registers its OBD/complex-data entries
// into m.
func LoadJSONFile(m *Manifest, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return LoadJSON(m, data)
}

// LoadJSON registers the OBD/complex-data entries in data into m.
func LoadJSON(m *Manifest, data []byte) error {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	for _, sig := range doc.OBDSignals {
		m.RegisterPID(signalid.ID(sig.SignalID), PidDecoderFormat{
			PID:               sig.PID,
			StartByte:         sig.StartByte,
			BitRightShift:     sig.BitRightShift,
			ByteLength:        sig.ByteLength,
			BitMaskLength:     sig.BitMaskLength,
			Scaling:           sig.Scaling,
			Offset:            sig.Offset,
			PidResponseLength: sig.PidResponseLength,
		})
	}

	for _, sig := range doc.ComplexSignals {
		m.RegisterComplexSignal(signalid.ID(sig.SignalID), sig.InterfaceID, sig.MessageID, sig.RootTypeID)
	}

	for _, t := range doc.ComplexTypes {
		kind, err := parseComplexTypeKind(t.Kind)
		if err != nil {
			return fmt.Errorf("complex type %d: %w", t.TypeID, err)
		}

		m.RegisterComplexType(t.TypeID, dictionary.ComplexDataType{
			Kind:                 kind,
			ElementTypeID:        t.ElementTypeID,
			OrderedMemberTypeIDs: t.MemberTypeIDs,
		})
	}

	return nil
}

func parseComplexTypeKind(kind string) (dictionary.ComplexTypeKind, error) {
	switch kind {
	case "primitive":
		return dictionary.Primitive, nil
	case "array":
		return dictionary.Array, nil
	case "struct":
		return dictionary.Struct, nil
	default:
		return dictionary.InvalidType, fmt.Errorf("unknown complex type kind %q", kind)
	}
}
