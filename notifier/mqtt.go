package notifier

import (
	"context"
	"fmt"
	"net"

	jsoniter "github.com/json-iterator/go"

	"github.com/eclipse/paho.golang/packets"
	"github.com/eclipse/paho.golang/paho"

	"DecoderCore/base"
	"DecoderCore/dictionary"
)

// mqttPayload is the wire shape of one published dictionary, encoded
// with jsoniter the same way the teacher's can/canparser.go encodes
// its own hot-path CAN frame payload.
type mqttPayload struct {
	Protocol string      `json:"protocol"`
	CAN      interface{} `json:"can,omitempty"`
	Complex  interface{} `json:"complex,omitempty"`
}

// MQTTPublisher is an ActiveDecoderDictionaryListener that publishes
// every dictionary it receives to a topic derived from
// base.Config.MQTT.DictionaryTopicPrefix and the dictionary's
// protocol, grounded on the teacher's parseAndPublish/initMQTT.
type MQTTPublisher struct {
	client      *paho.Client
	topicPrefix string
	qos         byte
	retained    bool
}

// NewMQTTPublisher dials cfg.Broker and returns a publisher, matching
// the teacher's initMQTT connect/CONNECT sequence.
func NewMQTTPublisher(cfg *base.MQTT) (*MQTTPublisher, error) {
	tcpConn, err := net.Dial("tcp", cfg.Broker)
	if err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, err)
	}

	safeConn := packets.NewThreadSafeConn(tcpConn)
	client := paho.NewClient(paho.ClientConfig{Conn: safeConn})

	connect := &paho.Connect{
		KeepAlive:  30,
		ClientID:   cfg.Clientid,
		CleanStart: true,
		Username:   cfg.Username,
		Password:   []byte(cfg.Password),
	}
	if cfg.Username != "" {
		connect.UsernameFlag = true
	}
	if cfg.Password != "" {
		connect.PasswordFlag = true
	}

	if _, err := client.Connect(context.Background(), connect); err != nil {
		return nil, fmt.Errorf("mqtt CONNECT: %w", err)
	}

	return &MQTTPublisher{client: client, topicPrefix: cfg.DictionaryTopicPrefix, qos: 1, retained: true}, nil
}

// Disconnect closes the underlying MQTT connection, mirroring the
// teacher's deferred client.Disconnect at process shutdown.
func (p *MQTTPublisher) Disconnect() {
	if err := p.client.Disconnect(&paho.Disconnect{ReasonCode: 0}); err != nil {
		base.Logger.WithError(err).Warn("mqtt disconnect failed")
	}
}

// OnChangeOfActiveDictionary implements ActiveDecoderDictionaryListener.
func (p *MQTTPublisher) OnChangeOfActiveDictionary(dict dictionary.Dictionary, protocol dictionary.Protocol) {
	payload := mqttPayload{Protocol: protocol.String()}

	switch d := dict.(type) {
	case *dictionary.CANDecoderDictionary:
		payload.CAN = d
	case *dictionary.ComplexDataDecoderDictionary:
		payload.Complex = d
	}

	data, err := jsoniter.Marshal(&payload)
	if err != nil {
		base.Logger.WithField("protocol", protocol.String()).WithError(err).Error("failed to encode dictionary payload")
		return
	}

	topic := p.topicPrefix + "/" + protocol.String()
	if _, err := p.client.Publish(context.Background(), &paho.Publish{
		Topic:   topic,
		QoS:     p.qos,
		Retain:  p.retained,
		Payload: data,
	}); err != nil {
		base.Logger.WithField("topic", topic).WithError(err).Error("failed to publish dictionary")
	}
}
