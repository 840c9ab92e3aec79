// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin provides a small RESTful HTTP API to inspect and manage the relay's endpoint registry.
package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/mux"

	"github.com/grpchub/grpchub-go/pkg/relay"
)

// API serves the admin endpoints for a Registry.
type API struct {
	router   *mux.Router
	registry relay.Registry
	started  time.Time
}

// NewAPI binds the admin endpoints to the router. If metrics is not nil, it is served at /metrics.
func NewAPI(router *mux.Router, registry relay.Registry, metrics http.Handler) *API {
	api := &API{
		router:   router,
		registry: registry,
		started:  time.Now(),
	}

	api.router.HandleFunc("/endpoints", api.handleEndpoints).Methods(http.MethodGet)
	api.router.HandleFunc("/endpoints/{id}", api.handleEndpoint).Methods(http.MethodGet)
	api.router.HandleFunc("/endpoints/{id}", api.handleUnregister).Methods(http.MethodDelete)
	api.router.HandleFunc("/status", api.handleStatus).Methods(http.MethodGet)

	if metrics != nil {
		api.router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	return api
}

// ServeHTTP is a http.Handler to be bound to a HTTP endpoint.
func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.router.ServeHTTP(w, r)
}

func (api *API) endpoint(id string) (*Endpoint, bool) {
	q, ok := api.registry.Resolve(id)
	if !ok {
		return nil, false
	}

	return &Endpoint{
		ID:       id,
		Queued:   q.Len(),
		Capacity: q.Cap(),
	}, true
}

// handleEndpoints processes GET /endpoints requests.
func (api *API) handleEndpoints(w http.ResponseWriter, _ *http.Request) {
	response := EndpointsResponse{Endpoints: []Endpoint{}}

	for _, id := range api.registry.Endpoints() {
		// the endpoint might be gone in between
		if endpoint, ok := api.endpoint(id); ok {
			response.Endpoints = append(response.Endpoints, *endpoint)
		}
	}

	writeJson(w, http.StatusOK, response)
}

// handleEndpoint processes GET /endpoints/{id} requests.
func (api *API) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if endpoint, ok := api.endpoint(id); !ok {
		writeJson(w, http.StatusNotFound, EndpointResponse{Error: fmt.Sprintf("endpoint %s is not registered", id)})
	} else {
		writeJson(w, http.StatusOK, EndpointResponse{Endpoint: endpoint})
	}
}

// handleUnregister processes DELETE /endpoints/{id} requests. The connection itself stays open; envelopes for the
// endpoint result in unavailable errors until it connects again.
func (api *API) handleUnregister(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, ok := api.registry.Resolve(id); !ok {
		writeJson(w, http.StatusNotFound, UnregisterResponse{Error: fmt.Sprintf("endpoint %s is not registered", id)})
		return
	}

	api.registry.Unregister(id)
	log.WithField("endpoint", id).Info("Unregistered endpoint by admin request")

	writeJson(w, http.StatusOK, UnregisterResponse{})
}

// handleStatus processes GET /status requests.
func (api *API) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, StatusResponse{
		Endpoints: api.registry.Len(),
		Started:   api.started.Format(time.RFC3339),
		Uptime:    time.Since(api.started).Round(time.Second).String(),
	})
}

func writeJson(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to write admin response")
	}
}
