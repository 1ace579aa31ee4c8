// Command decodercore runs the decoder dictionary extraction core as
// a standalone process: load a decoder manifest and a set of
// collection schemes, extract per-protocol decoder dictionaries, and
// publish them to registered consumers (MQTT out-of-process, an
// in-process HTTP inspection endpoint). Wiring follows the teacher's
// cmd/main.go shape: load config, init log, load data sources, run
// the work loop, wait for SIGINT.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"DecoderCore/base"
	"DecoderCore/caninterface"
	"DecoderCore/dbc"
	"DecoderCore/dictionary"
	"DecoderCore/extractor"
	"DecoderCore/manifest"
	"DecoderCore/notifier"
	"DecoderCore/scheme"
)

var (
	log     = base.Logger
	signals = make(chan os.Signal, 1)
)

func initLog() {
	log.SetReportCaller(true)

	switch base.GConfig.LOG.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: base.TimestampFormat})
	case "text":
		fallthrough
	default:
		log.SetFormatter(&logrus.TextFormatter{TimestampFormat: base.TimestampFormat})
	}
}

func main() {
	configPath := flag.String("config", "./config.json", "path to config.json")
	flag.Parse()

	if err := loadConfig(*configPath); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("Load config success !!!")

	initLog()

	if level, err := logrus.ParseLevel(base.GConfig.LOG.LogLevel); err != nil {
		fmt.Println("ParseLevel failed !!! ", base.GConfig.LOG.LogLevel, err)
	} else {
		log.SetLevel(level)
	}

	dm := manifest.New()
	if err := loadManifest(dm); err != nil {
		log.Fatalln(err)
	}
	log.Debugln("Load manifest success !!!")

	schemes, err := scheme.LoadJSONFile(base.GConfig.SchemesPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Debugf("Loaded %d schemes", len(schemes))

	translator := caninterface.New()
	registerInterfaces(translator, dm)

	notify := notifier.New()
	if base.GConfig.MQTT.Enable {
		publisher, err := notifier.NewMQTTPublisher(&base.GConfig.MQTT)
		if err != nil {
			log.Errorln("mqtt publisher disabled:", err)
		} else {
			notify.Register(publisher)
			defer publisher.Disconnect()
		}
	}

	inspector := &dictionaryInspector{}
	notify.Register(inspector)

	signal.Notify(signals, os.Interrupt)

	var wg sync.WaitGroup
	httpServer := startHTTPServer(&wg, inspector)

	runExtractionLoop(schemes, dm, translator, notify)

	<-signals
	log.Debugln("recv interrupt signal")
	httpServer.Shutdown(5 * time.Second)
	wg.Wait()
}

func loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, base.GConfig)
}

func loadManifest(dm *manifest.Manifest) error {
	if base.GConfig.Manifest.DBCExcel != "" {
		if doc, ok := dbc.ParseExcel(base.GConfig.Manifest.DBCExcel); ok {
			manifest.FromDBC(dm, doc, "can0")
		} else {
			log.Warnln("no DBC excel file loaded:", base.GConfig.Manifest.DBCExcel)
		}
	}

	f, err := os.Open(base.GConfig.Manifest.DBCPath)
	if err == nil {
		defer f.Close()
		parser := dbc.NewParser(f)
		if !parser.Parse() {
			log.Warnln("DBC parse reported errors:", parser.Err())
		}
		manifest.FromDBC(dm, parser.Data(), "can0")
	} else {
		log.Warnln("no DBC file loaded:", err)
	}

	if base.GConfig.Manifest.ManifestJSONPath != "" {
		if err := manifest.LoadJSONFile(dm, base.GConfig.Manifest.ManifestJSONPath); err != nil {
			log.Warnln("no manifest.json loaded:", err)
		}
	}

	return nil
}

func registerInterfaces(translator *caninterface.Translator, dm *manifest.Manifest) {
	translator.Register("can0")
}

func runExtractionLoop(schemes map[scheme.ID]*scheme.Scheme, dm *manifest.Manifest, translator *caninterface.Translator, notify *notifier.Notifier) {
	runOnce := func() {
		result := extractor.Extract(schemes, dm, translator, base.GConfig.Extractor.MaxComplexTypes)
		notify.PublishAll(result.Entries())
	}

	runOnce()

	if base.GConfig.Extractor.PollInterval <= 0 {
		return
	}

	ticker := time.NewTicker(base.GConfig.Extractor.PollInterval)
	go func() {
		for range ticker.C {
			runOnce()
		}
	}()
}

// dictionaryInspector is an in-process ActiveDecoderDictionaryListener
// that keeps the most recently published dictionary per protocol for
// the /dictionaries HTTP endpoint, grounded on the teacher's Pong
// health-check handler pattern.
type dictionaryInspector struct {
	mu     sync.RWMutex
	latest map[string]dictionary.Dictionary
}

func (d *dictionaryInspector) OnChangeOfActiveDictionary(dict dictionary.Dictionary, protocol dictionary.Protocol) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.latest == nil {
		d.latest = make(map[string]dictionary.Dictionary)
	}
	d.latest[protocol.String()] = dict
}

func startHTTPServer(wg *sync.WaitGroup, inspector *dictionaryInspector) *HttpServer {
	mux := http.NewServeMux()
	mux.HandleFunc(base.GConfig.HttpServer.HealthCheckURI, pong)
	mux.HandleFunc(base.GConfig.HttpServer.DictionaryURI, inspector.serveHTTP)

	server := &HttpServer{Server: &http.Server{Addr: base.GConfig.HttpServer.ServerAddr, Handler: mux}}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil {
			log.Errorln("http server error:", err)
		}
	}()

	return server
}

func pong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (d *dictionaryInspector) serveHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := jsoniter.Marshal(d.latest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
