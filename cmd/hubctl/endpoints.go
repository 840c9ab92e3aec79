// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/grpchub/grpchub-go/pkg/admin"
)

// listEndpoints for the "endpoints" CLI option.
func listEndpoints(args []string) {
	if len(args) != 1 {
		printUsage()
	}

	endpoints, err := fetchEndpoints(http.DefaultClient, args[0])
	if err != nil {
		printFatal(err, "Fetching endpoints errored")
	}

	for _, endpoint := range endpoints {
		fmt.Printf("%s\t%d/%d\n", endpoint.ID, endpoint.Queued, endpoint.Capacity)
	}
}

func fetchEndpoints(client *http.Client, adminUrl string) ([]admin.Endpoint, error) {
	resp, err := client.Get(strings.TrimSuffix(adminUrl, "/") + "/endpoints")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("response's status code is %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var endpointsResponse admin.EndpointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&endpointsResponse); err != nil {
		return nil, err
	}
	if endpointsResponse.Error != "" {
		return nil, fmt.Errorf("response contains error: %s", endpointsResponse.Error)
	}

	return endpointsResponse.Endpoints, nil
}
