package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BurntSushi/toml"

	"github.com/lhoffmann/netconn/pkg/netconn"
)

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Netconn netconnConf
	Logging logConf
}

// netconnConf describes the Netconn-configuration block.
type netconnConf struct {
	Capacity int
	Timeout  string
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level        string
	ReportCaller bool `toml:"report-caller"`
	Format       string
}

// parseConfig reads the given TOML file, applies its logging settings and
// creates a Manager from its netconn block. Missing values fall back to the
// Manager's defaults.
func parseConfig(filename string) (*netconn.Manager, error) {
	var conf tomlConfig
	if _, err := toml.DecodeFile(filename, &conf); err != nil {
		return nil, err
	}

	// Logging
	if conf.Logging.Level != "" {
		if lvl, err := log.ParseLevel(conf.Logging.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    conf.Logging.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("Failed to set log level. Please select one of the provided ones")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(conf.Logging.ReportCaller)

	switch conf.Logging.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})

	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})

	default:
		log.Warn("Unknown logging format")
	}

	// Netconn
	capacity := conf.Netconn.Capacity
	if capacity == 0 {
		capacity = netconn.DefaultCapacity
	}

	timeout := netconn.DefaultTimeout
	if conf.Netconn.Timeout != "" {
		var err error
		if timeout, err = time.ParseDuration(conf.Netconn.Timeout); err != nil {
			return nil, fmt.Errorf("parsing netconn.timeout: %w", err)
		}
	}

	return netconn.NewManagerWith(capacity, timeout), nil
}

// parseTransport maps the CLI's transport argument onto a TransportType.
func parseTransport(arg string) (netconn.TransportType, error) {
	switch arg {
	case "udp":
		return netconn.Datagram, nil
	case "tcp":
		return netconn.Stream, nil
	default:
		return 0, fmt.Errorf("unknown transport %q, use udp or tcp", arg)
	}
}
