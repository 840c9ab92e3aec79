// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "configuration.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeConfig(t, `
profiling = false

[relay]
name = "hub-1"
listen = "127.0.0.1:50055"
queue-size = 64

[logging]
level = "info"
report-caller = false
format = "text"

[websocket]
listen = "127.0.0.1:8080"

[admin]
listen = "127.0.0.1:8080"

[metrics]
enabled = true
prefix = "hub"

[discovery]
ipv4 = true
`)

	conf, err := parseConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "hub-1", conf.Relay.Name)
	assert.Equal(t, "127.0.0.1:50055", conf.Relay.Listen)
	assert.Equal(t, 64, conf.Relay.QueueSize)
	assert.Equal(t, "/ws", conf.WebSocket.Path)
	assert.True(t, conf.Metrics.Enabled)
	assert.Equal(t, "hub", conf.Metrics.Prefix)
	assert.True(t, conf.Discovery.IPv4)
	assert.Equal(t, uint(defaultDiscoveryInterval), conf.Discovery.Interval)
}

func TestParseConfigDefaults(t *testing.T) {
	conf, err := parseConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, defaultListen, conf.Relay.Listen)
	assert.Equal(t, 0, conf.Relay.QueueSize)
	assert.NotEmpty(t, conf.Relay.Name)
	assert.Empty(t, conf.WebSocket.Path)
}

func TestParseConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
[relay]
listen = "no port"
queue-size = -1

[tls]
watch = true

[websocket]
listen = "127.0.0.1:8080"
path = "ws"

[metrics]
enabled = true
`)

	_, err := parseConfig(path)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.WrappedErrors(), 5)
}

func TestParseConfigMissingFile(t *testing.T) {
	_, err := parseConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseListenPort(t *testing.T) {
	tests := []struct {
		listen string
		port   int
		valid  bool
	}{
		{"[::1]:50055", 50055, true},
		{"127.0.0.1:0", 0, true},
		{":8080", 8080, true},
		{"localhost", 0, false},
		{"localhost:http", 0, false},
		{"localhost:70000", 0, false},
	}

	for _, test := range tests {
		port, err := parseListenPort(test.listen)
		if test.valid {
			require.NoError(t, err, test.listen)
			assert.Equal(t, test.port, port)
		} else {
			assert.Error(t, err, test.listen)
		}
	}
}
