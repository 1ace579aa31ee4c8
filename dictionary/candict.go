// Package dictionary implements the decoder dictionary model of
// spec.md §3/§4.3: the CAN/OBD dictionary and the complex-data
// dictionary, plus the bounded complex-type traversal of §4.5.
package dictionary

import "DecoderCore/signalid"

// ChannelID is the compact numeric alias for a CAN interface name.
type ChannelID uint32

// InvalidChannel is returned by a CanInterfaceTranslator when it does
// not recognize an interface name.
const InvalidChannel ChannelID = 0xFFFFFFFF

// OBDChannel is the synthetic channel every OBD signal shares
// (spec.md §4.4.2).
const OBDChannel ChannelID = 0

// ByteSize is the number of bits per byte, spelled out because the
// original decoder-manifest fields are all byte/bit offsets (spec.md §6).
const ByteSize = 8

// MaxComplexTypes bounds the transitive closure walked in §4.5. It is
// a deployment default (spec.md §6/§9's Open Question is resolved as
// "silent truncation"); callers may override it via
// base.Config.Extractor.MaxComplexTypes when invoking the extractor.
const MaxComplexTypes = 512

// CollectType is the capture mode for a CAN/OBD frame entry.
type CollectType int

const (
	Decode CollectType = iota
	Raw
	RawAndDecode
)

func (c CollectType) String() string {
	switch c {
	case Decode:
		return "DECODE"
	case Raw:
		return "RAW"
	case RawAndDecode:
		return "RAW_AND_DECODE"
	default:
		return "UNKNOWN"
	}
}

// CanSignalFormat is one signal's bit layout and scaling within a
// CAN frame or OBD PID response.
type CanSignalFormat struct {
	SignalID         signalid.ID
	FirstBitPosition uint16
	SizeInBits       uint16
	Factor           float64
	Offset           float64
}

// CanMessageFormat is the full bit layout of one CAN frame or OBD PID
// response.
type CanMessageFormat struct {
	MessageID   uint32
	SizeInBytes uint8
	Signals     []CanSignalFormat
}

// CanMessageDecoderMethod is one dictionary entry: how to handle a
// single (channel, frame-or-pid) pair.
type CanMessageDecoderMethod struct {
	CollectType CollectType
	Format      CanMessageFormat
}

// Protocol discriminates the tagged Dictionary variant (spec.md §9
// design note: "prefer a tagged variant with exhaustive matching" over
// downcasts).
type Protocol int

const (
	ProtocolInvalid Protocol = iota
	ProtocolCANRaw
	ProtocolOBD
	ProtocolComplexData
)

func (p Protocol) String() string {
	switch p {
	case ProtocolCANRaw:
		return "RAW_SOCKET"
	case ProtocolOBD:
		return "OBD"
	case ProtocolComplexData:
		return "COMPLEX_DATA"
	default:
		return "INVALID"
	}
}

// Dictionary is the common capability of every emitted decoder
// dictionary: it knows which protocol it belongs to. Consumers type
// switch on the concrete type after checking Protocol(), never a
// dynamic downcast.
type Dictionary interface {
	Protocol() Protocol
}

// SupportedProtocols is the fixed set of protocols a pass reports on,
// mirroring the original's SUPPORTED_NETWORK_PROTOCOL list.
var SupportedProtocols = []Protocol{ProtocolCANRaw, ProtocolOBD, ProtocolComplexData}

// Entry pairs a protocol tag with its dictionary for one pass,
// matching spec.md §4.6's "(protocol_tag, dictionary_or_absent)"
// notification unit. Dictionary is nil when no enabled scheme
// collects anything for Protocol this pass — the protocol is
// reported as disabled, not omitted, so consumers can reconfigure
// when their dictionary disappears (spec.md §1).
type Entry struct {
	Protocol   Protocol
	Dictionary Dictionary
}

// CANDecoderDictionary is the two-level RAW-SOCKET/OBD dictionary of
// spec.md §3: channel id -> raw frame id (or PID) -> decoder method.
// The same type backs both RAW_SOCKET and OBD; proto records which.
type CANDecoderDictionary struct {
	proto                   Protocol
	CanMessageDecoderMethod map[ChannelID]map[uint32]CanMessageDecoderMethod
	SignalIDsToCollect      map[signalid.ID]struct{}
}

// NewCANDecoderDictionary returns an empty CAN/OBD dictionary tagged
// with proto (ProtocolCANRaw or ProtocolOBD), ready for mutation by
// the extractor.
func NewCANDecoderDictionary(proto Protocol) *CANDecoderDictionary {
	return &CANDecoderDictionary{
		proto:                   proto,
		CanMessageDecoderMethod: make(map[ChannelID]map[uint32]CanMessageDecoderMethod),
		SignalIDsToCollect:      make(map[signalid.ID]struct{}),
	}
}

// Protocol implements Dictionary.
func (d *CANDecoderDictionary) Protocol() Protocol { return d.proto }

// EnsureChannel returns the frame/PID sub-map for channel, creating it
// if absent (spec.md §4.4.1/§4.4.2's "ensure channel sub-mapping
// exists" step).
func (d *CANDecoderDictionary) EnsureChannel(channel ChannelID) map[uint32]CanMessageDecoderMethod {
	sub, ok := d.CanMessageDecoderMethod[channel]
	if !ok {
		sub = make(map[uint32]CanMessageDecoderMethod)
		d.CanMessageDecoderMethod[channel] = sub
	}
	return sub
}
