// Package manifest implements the read-only decoder manifest lookup
// of spec.md §3/§4.2 (component B): the mapping from a full signal id
// to its transport format, protocol, and (for complex signals) type
// graph. It is deliberately dumb about how it gets populated — see
// fromdbc.go and fromjson.go for the two population paths this
// repository supports.
package manifest

import (
	"sync"

	"DecoderCore/dictionary"
	"DecoderCore/signalid"
)

// PidDecoderFormat is the OBD-II bit layout for one signal's PID
// response, exactly the fields spec.md §3 lists.
type PidDecoderFormat struct {
	PID               uint32
	StartByte         int
	BitRightShift     int
	ByteLength        int
	BitMaskLength     int
	Scaling           float64
	Offset            float64
	PidResponseLength int
}

type canFrameRef struct {
	rawFrameID    uint32
	interfaceName string
}

type canFormatKey struct {
	rawFrameID    uint32
	interfaceName string
}

type complexSignalRef struct {
	interfaceID string
	messageID   string
	rootTypeID  uint32
}

// Manifest is a mutex-protected, read-mostly lookup table, grounded on
// the teacher's whitelist.WhiteList shape: a plain map behind a
// sync.RWMutex, safe for many concurrent readers while it is being
// built by a single loader goroutine at startup.
type Manifest struct {
	mu sync.RWMutex

	protocolOf     map[signalid.ID]dictionary.Protocol
	canFrames      map[signalid.ID]canFrameRef
	canFormats     map[canFormatKey]dictionary.CanMessageFormat
	pidFormats     map[signalid.ID]PidDecoderFormat
	complexSignals map[signalid.ID]complexSignalRef
	complexTypes   map[uint32]dictionary.ComplexDataType
}

// New returns an empty manifest ready for registration.
func New() *Manifest {
	return &Manifest{
		protocolOf:     make(map[signalid.ID]dictionary.Protocol),
		canFrames:      make(map[signalid.ID]canFrameRef),
		canFormats:     make(map[canFormatKey]dictionary.CanMessageFormat),
		pidFormats:     make(map[signalid.ID]PidDecoderFormat),
		complexSignals: make(map[signalid.ID]complexSignalRef),
		complexTypes:   make(map[uint32]dictionary.ComplexDataType),
	}
}

// RegisterCANSignal associates a full signal id with its raw CAN frame
// id and source interface name, and marks its protocol as RAW_SOCKET.
func (m *Manifest) RegisterCANSignal(id signalid.ID, rawFrameID uint32, interfaceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.protocolOf[id] = dictionary.ProtocolCANRaw
	m.canFrames[id] = canFrameRef{rawFrameID: rawFrameID, interfaceName: interfaceName}
}

// RegisterCANMessageFormat records the full bit layout for a
// (rawFrameID, interfaceName) pair.
func (m *Manifest) RegisterCANMessageFormat(rawFrameID uint32, interfaceName string, format dictionary.CanMessageFormat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.canFormats[canFormatKey{rawFrameID: rawFrameID, interfaceName: interfaceName}] = format
}

// RegisterPID associates a full signal id with its OBD PID decoder
// format and marks its protocol as OBD.
func (m *Manifest) RegisterPID(id signalid.ID, format PidDecoderFormat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.protocolOf[id] = dictionary.ProtocolOBD
	m.pidFormats[id] = format
}

// RegisterComplexSignal associates a full signal id with the
// interface/message/root-type triple that identifies it in the
// complex-data type system, and marks its protocol as COMPLEX_DATA.
func (m *Manifest) RegisterComplexSignal(id signalid.ID, interfaceID, messageID string, rootTypeID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.protocolOf[id] = dictionary.ProtocolComplexData
	m.complexSignals[id] = complexSignalRef{interfaceID: interfaceID, messageID: messageID, rootTypeID: rootTypeID}
}

// RegisterComplexType records one node of the complex data-type graph.
func (m *Manifest) RegisterComplexType(id uint32, t dictionary.ComplexDataType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.complexTypes[id] = t
}

// ProtocolOf implements the decoder manifest's protocol_of lookup.
// Unregistered ids report ProtocolInvalid, which the extractor logs as
// an invalid protocol and skips.
func (m *Manifest) ProtocolOf(id signalid.ID) dictionary.Protocol {
	m.mu.RLock()
	defer m.mu.RUnlock()

	proto, ok := m.protocolOf[id]
	if !ok {
		return dictionary.ProtocolInvalid
	}
	return proto
}

// CANFrameOf implements can_frame_of(signal_id).
func (m *Manifest) CANFrameOf(id signalid.ID) (rawFrameID uint32, interfaceName string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ref, ok := m.canFrames[id]
	return ref.rawFrameID, ref.interfaceName, ok
}

// CANMessageFormat implements can_message_format(raw_frame_id, interface_name).
func (m *Manifest) CANMessageFormat(rawFrameID uint32, interfaceName string) dictionary.CanMessageFormat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.canFormats[canFormatKey{rawFrameID: rawFrameID, interfaceName: interfaceName}]
}

// PIDFormat implements pid_format(signal_id).
func (m *Manifest) PIDFormat(id signalid.ID) (PidDecoderFormat, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	format, ok := m.pidFormats[id]
	return format, ok
}

// ComplexSignalOf implements complex_signal_of(signal_id).
func (m *Manifest) ComplexSignalOf(id signalid.ID) (interfaceID, messageID string, rootTypeID uint32, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ref, ok := m.complexSignals[id]
	return ref.interfaceID, ref.messageID, ref.rootTypeID, ok
}

// ComplexType implements complex_type(type_id) and satisfies
// dictionary.ComplexTypeSource, so a *Manifest can be passed directly
// to dictionary.PopulateComplexTypeMap/PutComplexSignal.
func (m *Manifest) ComplexType(id uint32) (dictionary.ComplexDataType, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.complexTypes[id]
	return t, ok
}
