// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opencensus.io/stats/view"
)

// value of a view's row having the given tag value, or no tags for an empty one.
func value(t *testing.T, name, tagValue string) int64 {
	rows, err := view.RetrieveData(name)
	require.NoError(t, err)

	for _, row := range rows {
		if (tagValue == "" && len(row.Tags) == 0) || (len(row.Tags) == 1 && row.Tags[0].Value == tagValue) {
			switch data := row.Data.(type) {
			case *view.CountData:
				return data.Value
			case *view.SumData:
				return int64(data.Value)
			}
		}
	}
	return 0
}

func TestRecording(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	ctx := context.Background()

	connBefore := value(t, "relay/connections", "")
	newConnBefore := value(t, "relay/new_connections", "")
	forwardedBefore := value(t, "relay/forwarded", "data")
	droppedBefore := value(t, "relay/dropped", "")
	closedBefore := value(t, "relay/terminations", ReasonUnavailable)

	ConnectionOpened(ctx)
	ConnectionOpened(ctx)
	Forwarded(ctx, "data")
	Dropped(ctx)
	ConnectionClosed(ctx, ReasonUnavailable)

	assert.Equal(t, connBefore+1, value(t, "relay/connections", ""))
	assert.Equal(t, newConnBefore+2, value(t, "relay/new_connections", ""))
	assert.Equal(t, forwardedBefore+1, value(t, "relay/forwarded", "data"))
	assert.Equal(t, droppedBefore+1, value(t, "relay/dropped", ""))
	assert.Equal(t, closedBefore+1, value(t, "relay/terminations", ReasonUnavailable))
}

func TestExporter(t *testing.T) {
	require.NoError(t, Register())

	exporter, err := NewExporter("")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, exporter.Close())
	}()

	Forwarded(context.Background(), "control")

	rec := httptest.NewRecorder()
	exporter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "grpchub_relay_forwarded")
}
