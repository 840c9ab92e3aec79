// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

// Endpoint describes a registered endpoint and its delivery queue.
type Endpoint struct {
	ID       string `json:"id"`
	Queued   int    `json:"queued"`
	Capacity int    `json:"capacity"`
}

// EndpointsResponse describes a JSON response for GET /endpoints.
type EndpointsResponse struct {
	Error     string     `json:"error,omitempty"`
	Endpoints []Endpoint `json:"endpoints"`
}

// EndpointResponse describes a JSON response for GET /endpoints/{id}.
type EndpointResponse struct {
	Error    string    `json:"error,omitempty"`
	Endpoint *Endpoint `json:"endpoint,omitempty"`
}

// UnregisterResponse describes a JSON response for DELETE /endpoints/{id}.
type UnregisterResponse struct {
	Error string `json:"error,omitempty"`
}

// StatusResponse describes a JSON response for GET /status.
type StatusResponse struct {
	Endpoints int    `json:"endpoints"`
	Started   string `json:"started"`
	Uptime    string `json:"uptime"`
}
