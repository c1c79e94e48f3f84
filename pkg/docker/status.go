// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/go-connections/nat"
)

// composeProjectLabel is set by docker compose on every container it starts.
const composeProjectLabel = "com.docker.compose.project"

// ContainerStatus is one network container's observable state.
type ContainerStatus struct {
	Name  string
	State string
	Ports []string
}

// NetworkContainers lists the compose-managed containers on the host with
// their states and published ports, sorted by name. Stopped containers are
// included so a half-down network is visible.
func NetworkContainers(ctx context.Context, c Client) ([]ContainerStatus, error) {
	containers, err := c.ContainerList(ctx, types.ContainerListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", composeProjectLabel)),
	})
	if err != nil {
		return nil, fmt.Errorf("listing the network's containers: %w", err)
	}

	statuses := make([]ContainerStatus, 0, len(containers))
	for _, ctr := range containers {
		info, err := c.ContainerInspect(ctx, ctr.ID)
		if err != nil {
			return nil, fmt.Errorf("inspecting container %s: %w", ctr.ID, err)
		}
		state := "unknown"
		if info.State != nil {
			state = info.State.Status
		}
		var ports nat.PortMap
		if info.NetworkSettings != nil {
			ports = info.NetworkSettings.Ports
		}
		statuses = append(statuses, ContainerStatus{
			Name:  strings.TrimPrefix(info.Name, "/"),
			State: state,
			Ports: formatPorts(ports),
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// formatPorts renders a port map as "host->container/proto" entries, sorted.
// Unpublished ports are listed bare.
func formatPorts(ports nat.PortMap) []string {
	var out []string
	for port, bindings := range ports {
		if len(bindings) == 0 {
			out = append(out, fmt.Sprintf("%s/%s", port.Port(), port.Proto()))
			continue
		}
		for _, b := range bindings {
			out = append(out, fmt.Sprintf(
				"%s->%s/%s", b.HostPort, port.Port(), port.Proto(),
			))
		}
	}
	sort.Strings(out)
	return out
}
