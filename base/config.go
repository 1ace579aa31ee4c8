package base

import (
	"time"
)

type MQTTTopic struct {
	Topic    string
	Qos      int
	Retained bool
}

type MQTT struct {
	Enable       bool
	DictionaryTopicPrefix string
	Broker       string
	Clientid     string
	Username     string
	Password     string
}

type HttpServer struct {
	ServerAddr     string // in the form "host:port"
	HealthCheckURI string // default: /healthz
	DictionaryURI  string // default: /dictionaries
}

type LOG struct {
	LogToFile bool
	Format    string // json, text
	LogLevel  string // panic, fatal, error, warn warning, info, debug, trace
}

type PProf struct {
	Addr    string
	Timeout time.Duration
}

type TEST struct {
	TestMode bool
	PProf    `json:"PProf"`
}

// Manifest points at the on-disk sources used to bootstrap a
// DecoderManifest: a Vector DBC for CAN signals, plus a small JSON
// document for OBD PID formats and complex data types.
type Manifest struct {
	DBCPath          string
	DBCExcel         string
	ManifestJSONPath string
}

// Extractor holds the deployment-tunable knobs described in
// spec.md §6/§9 (MAX_COMPLEX_TYPES) plus how often to re-run
// extraction when driven by a ticker instead of a one-shot pass.
type Extractor struct {
	MaxComplexTypes int
	PollInterval    time.Duration
}

type Config struct {
	MQTT          `json:"MQTT"`
	HttpServer    `json:"HttpServer"`
	Manifest      `json:"Manifest"`
	SchemesPath   string
	Extractor     `json:"Extractor"`
	LOG           `json:"LOG"`
	TEST          `json:"TEST"`
}

func NewConfig() *Config {
	return &Config{
		MQTT{false, "decodercore/dictionary", "localhost:1883", "decodercore", "", ""},
		HttpServer{":8080", "/healthz", "/dictionaries"},
		Manifest{"./can.dbc", "./can.xlsx", "./manifest.json"},
		"./schemes.json",
		Extractor{512, 0},
		LOG{false, "text", "info"},
		TEST{},
	}
}

var GConfig = NewConfig()
