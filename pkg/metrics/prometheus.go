// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats/view"
)

// DefaultPrefix is the Prometheus namespace if none is configured.
const DefaultPrefix = "grpchub"

// Exporter makes the registered views available as a Prometheus scrape endpoint.
type Exporter struct {
	exporter *prometheus.Exporter
}

// NewExporter creates and registers a Prometheus exporter. The Exporter must be closed to unregister it.
func NewExporter(prefix string) (*Exporter, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	exporter, err := prometheus.NewExporter(prometheus.Options{
		Namespace: prefix,
		OnError: func(err error) {
			log.WithError(err).Warn("Prometheus exporter errored")
		},
	})
	if err != nil {
		return nil, err
	}

	view.RegisterExporter(exporter)
	return &Exporter{exporter: exporter}, nil
}

// ServeHTTP serves the metrics in the Prometheus text format.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.exporter.ServeHTTP(w, r)
}

// Close unregisters the exporter.
func (e *Exporter) Close() error {
	view.UnregisterExporter(e.exporter)
	return nil
}
