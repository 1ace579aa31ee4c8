package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"DecoderCore/dbc"
	"DecoderCore/dictionary"
)

func TestProtocolOfUnregisteredIsInvalid(t *testing.T) {
	m := New()
	assert.Equal(t, dictionary.ProtocolInvalid, m.ProtocolOf(42))
}

func TestRegisterCANSignalRoundTrip(t *testing.T) {
	m := New()
	m.RegisterCANSignal(7, 0x100, "can0")
	m.RegisterCANMessageFormat(0x100, "can0", dictionary.CanMessageFormat{MessageID: 0x100, SizeInBytes: 8})

	assert.Equal(t, dictionary.ProtocolCANRaw, m.ProtocolOf(7))
	rawFrameID, iface, ok := m.CANFrameOf(7)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x100), rawFrameID)
	assert.Equal(t, "can0", iface)

	format := m.CANMessageFormat(rawFrameID, iface)
	assert.Equal(t, uint8(8), format.SizeInBytes)
}

func TestRegisterPID(t *testing.T) {
	m := New()
	m.RegisterPID(11, PidDecoderFormat{PID: 0x0C, StartByte: 0, ByteLength: 2, BitMaskLength: 8})

	assert.Equal(t, dictionary.ProtocolOBD, m.ProtocolOf(11))
	format, ok := m.PIDFormat(11)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x0C), format.PID)
}

func TestRegisterComplexSignal(t *testing.T) {
	m := New()
	m.RegisterComplexSignal(200, "ros2", "/objects", 1)

	assert.Equal(t, dictionary.ProtocolComplexData, m.ProtocolOf(200))
	iface, msg, root, ok := m.ComplexSignalOf(200)
	assert.True(t, ok)
	assert.Equal(t, "ros2", iface)
	assert.Equal(t, "/objects", msg)
	assert.Equal(t, uint32(1), root)
}

func TestFromDBCRegistersSignalsAndFormat(t *testing.T) {
	dbcText := "BO_ 256 EngineData: 8 ECU\n" +
		" SG_ EngineSpeed : 0|16@1+ (0.25,0) [0|16383.75] \"rpm\" Vector__XXX\n" +
		" SG_ EngineTemp : 16|8@1+ (1,-40) [-40|215] \"degC\" Vector__XXX\n"

	parser := dbc.NewParser(strings.NewReader(dbcText))
	assert.True(t, parser.Parse())

	m := New()
	assigned := FromDBC(m, parser.Data(), "can0")

	engineSpeedID, ok := assigned["EngineData.EngineSpeed"]
	assert.True(t, ok)
	assert.Equal(t, dictionary.ProtocolCANRaw, m.ProtocolOf(engineSpeedID))

	rawFrameID, iface, ok := m.CANFrameOf(engineSpeedID)
	assert.True(t, ok)
	assert.Equal(t, uint32(256), rawFrameID)

	format := m.CANMessageFormat(rawFrameID, iface)
	assert.Equal(t, uint8(8), format.SizeInBytes)
	assert.Len(t, format.Signals, 2)
}

func TestLoadJSONRegistersOBDAndComplexEntries(t *testing.T) {
	doc := []byte(`{
		"obd_signals": [
			{"signal_id": 11, "pid": 12, "start_byte": 0, "byte_length": 2, "bit_mask_length": 8},
			{"signal_id": 12, "pid": 12, "start_byte": 2, "byte_length": 2, "bit_mask_length": 8}
		],
		"complex_signals": [
			{"signal_id": 200, "interface_id": "ros2", "message_id": "/objects", "root_type_id": 1}
		],
		"complex_types": [
			{"type_id": 1, "kind": "array", "element_type_id": 2},
			{"type_id": 2, "kind": "struct", "member_type_ids": [3, 4]},
			{"type_id": 3, "kind": "primitive"},
			{"type_id": 4, "kind": "primitive"}
		]
	}`)

	m := New()
	assert.NoError(t, LoadJSON(m, doc))

	assert.Equal(t, dictionary.ProtocolOBD, m.ProtocolOf(11))
	assert.Equal(t, dictionary.ProtocolComplexData, m.ProtocolOf(200))

	typ, ok := m.ComplexType(2)
	assert.True(t, ok)
	assert.Equal(t, dictionary.Struct, typ.Kind)
	assert.Equal(t, []uint32{3, 4}, typ.OrderedMemberTypeIDs)
}

func TestLoadJSONRejectsUnknownKind(t *testing.T) {
	m := New()
	err := LoadJSON(m, []byte(`{"complex_types":[{"type_id":1,"kind":"bogus"}]}`))
	assert.Error(t, err)
}
