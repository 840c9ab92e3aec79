// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics records relay statistics as OpenCensus measures and exports them for Prometheus.
package metrics

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"go.opencensus.io/plugin/ocgrpc"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Termination reasons of a forwarding task.
const (
	ReasonClosed      = "closed"
	ReasonFault       = "fault"
	ReasonUnavailable = "unavailable"
)

var (
	kindTagKey   = tag.MustNewKey("kind")
	reasonTagKey = tag.MustNewKey("reason")

	connMeasure        = stats.Int64("relay/connections", "currently connected endpoints", stats.UnitDimensionless)
	newConnMeasure     = stats.Int64("relay/new_connections", "accepted connections", stats.UnitDimensionless)
	forwardedMeasure   = stats.Int64("relay/forwarded", "envelopes forwarded to a peer", stats.UnitDimensionless)
	droppedMeasure     = stats.Int64("relay/dropped", "envelopes dropped at a closed queue", stats.UnitDimensionless)
	terminationMeasure = stats.Int64("relay/terminations", "finished forwarding tasks", stats.UnitDimensionless)

	connView = &view.View{
		Measure:     connMeasure,
		Aggregation: view.Sum(),
	}
	newConnView = &view.View{
		Measure:     newConnMeasure,
		Aggregation: view.Count(),
	}
	forwardedView = &view.View{
		Measure:     forwardedMeasure,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{kindTagKey},
	}
	droppedView = &view.View{
		Measure:     droppedMeasure,
		Aggregation: view.Count(),
	}
	terminationView = &view.View{
		Measure:     terminationMeasure,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{reasonTagKey},
	}

	registerOnce sync.Once
	registerErr  error
)

// Views of this package together with the default gRPC server views.
func Views() []*view.View {
	views := []*view.View{connView, newConnView, forwardedView, droppedView, terminationView}
	return append(views, ocgrpc.DefaultServerViews...)
}

// Register all Views once. Without registered views, recording is a no-op.
func Register() error {
	registerOnce.Do(func() {
		registerErr = view.Register(Views()...)
	})
	return registerErr
}

// ConnectionOpened records a newly registered endpoint.
func ConnectionOpened(ctx context.Context) {
	stats.Record(ctx, connMeasure.M(1), newConnMeasure.M(1))
}

// ConnectionClosed records a finished forwarding task and why it ended.
func ConnectionClosed(ctx context.Context, reason string) {
	stats.Record(ctx, connMeasure.M(-1))
	recordTagged(ctx, reasonTagKey, reason, terminationMeasure.M(1))
}

// Forwarded records an envelope handed to a peer's queue.
func Forwarded(ctx context.Context, kind string) {
	recordTagged(ctx, kindTagKey, kind, forwardedMeasure.M(1))
}

// Dropped records an envelope which could not be queued.
func Dropped(ctx context.Context) {
	stats.Record(ctx, droppedMeasure.M(1))
}

func recordTagged(ctx context.Context, key tag.Key, value string, ms ...stats.Measurement) {
	if err := stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(key, value)}, ms...); err != nil {
		log.WithError(err).WithField(key.Name(), value).Debug("Recording metric errored")
	}
}
