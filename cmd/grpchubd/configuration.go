// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

const (
	defaultListen            = "[::1]:50055"
	defaultWebSocketPath     = "/ws"
	defaultDiscoveryInterval = 10
)

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Relay     relayConf
	TLS       tlsConf `toml:"tls"`
	Logging   logConf
	WebSocket webSocketConf `toml:"websocket"`
	Admin     adminConf
	Metrics   metricsConf
	Discovery discoveryConf
	Profiling bool
}

// relayConf describes the Relay-configuration block.
type relayConf struct {
	Name      string
	Listen    string
	QueueSize int `toml:"queue-size"`
}

// tlsConf describes the TLS-configuration block.
type tlsConf struct {
	Pem        string
	ClientAuth bool `toml:"client-auth"`
	Watch      bool
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level        string
	ReportCaller bool `toml:"report-caller"`
	Format       string
}

// webSocketConf describes the WebSocket bridge.
type webSocketConf struct {
	Listen string
	Path   string
}

// adminConf describes the admin HTTP API.
type adminConf struct {
	Listen string
}

// metricsConf describes the Metrics-configuration block. Metrics are served by the admin HTTP API.
type metricsConf struct {
	Enabled bool
	Prefix  string
}

// discoveryConf describes the Discovery-configuration block.
type discoveryConf struct {
	IPv4     bool
	IPv6     bool
	Interval uint
}

// parseConfig reads the TOML configuration, configures logging and checks the configuration's values.
func parseConfig(filename string) (conf tomlConfig, err error) {
	if _, err = toml.DecodeFile(filename, &conf); err != nil {
		return
	}

	setupLogging(conf.Logging)

	conf.applyDefaults()
	err = conf.validate()
	return
}

func setupLogging(conf logConf) {
	if conf.Level != "" {
		if lvl, err := log.ParseLevel(conf.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    conf.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("Failed to set log level. Please select one of the provided ones")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(conf.ReportCaller)

	switch conf.Format {
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
}

func (conf *tomlConfig) applyDefaults() {
	if conf.Relay.Listen == "" {
		conf.Relay.Listen = defaultListen
	}
	if conf.Relay.Name == "" {
		if hostname, err := os.Hostname(); err == nil {
			conf.Relay.Name = hostname
		} else {
			conf.Relay.Name = "grpchub"
		}
	}

	if conf.WebSocket.Listen != "" && conf.WebSocket.Path == "" {
		conf.WebSocket.Path = defaultWebSocketPath
	}

	if (conf.Discovery.IPv4 || conf.Discovery.IPv6) && conf.Discovery.Interval == 0 {
		conf.Discovery.Interval = defaultDiscoveryInterval
	}
}

// validate returns all problems of this configuration at once.
func (conf tomlConfig) validate() (errs error) {
	listeners := []struct {
		name   string
		listen string
	}{
		{"relay.listen", conf.Relay.Listen},
		{"websocket.listen", conf.WebSocket.Listen},
		{"admin.listen", conf.Admin.Listen},
	}
	for _, l := range listeners {
		if l.listen == "" {
			continue
		}
		if _, err := parseListenPort(l.listen); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s %q is invalid: %v", l.name, l.listen, err))
		}
	}

	if conf.Relay.QueueSize < 0 {
		errs = multierror.Append(errs, fmt.Errorf("relay.queue-size %d is negative", conf.Relay.QueueSize))
	}

	if conf.TLS.Pem == "" && (conf.TLS.ClientAuth || conf.TLS.Watch) {
		errs = multierror.Append(errs, fmt.Errorf("tls.client-auth and tls.watch require tls.pem"))
	}

	if conf.WebSocket.Listen != "" && !strings.HasPrefix(conf.WebSocket.Path, "/") {
		errs = multierror.Append(errs, fmt.Errorf("websocket.path %q must start with a slash", conf.WebSocket.Path))
	}

	if conf.Metrics.Enabled && conf.Admin.Listen == "" {
		errs = multierror.Append(errs, fmt.Errorf("metrics are served by the admin API, but admin.listen is empty"))
	}

	return
}

func parseListenPort(endpoint string) (port int, err error) {
	var portStr string
	_, portStr, err = net.SplitHostPort(endpoint)
	if err != nil {
		return
	}
	port, err = strconv.Atoi(portStr)
	if err == nil && (port < 0 || port > 0xffff) {
		err = fmt.Errorf("port %d exceeds range", port)
	}
	return
}
