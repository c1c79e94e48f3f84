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
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

const (
	// MinComposeVersion is the oldest docker compose release with reliable
	// profile and env-file handling.
	MinComposeVersion = "2.12.1"

	minCPUs = 4

	minMemorySingleNode = int64(4 * units.GiB)
	minMemoryMultiNode  = int64(14 * units.GiB)
)

// CommandRunner executes a host command and returns its combined output.
// Injected so version probing is testable without a docker binary.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func ExecCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// HostCheck validates that the container engine on this host can run the
// local network.
type HostCheck struct {
	client Client
	run    CommandRunner
}

func NewHostCheck(client Client, run CommandRunner) *HostCheck {
	if run == nil {
		run = ExecCommandRunner
	}
	return &HostCheck{client: client, run: run}
}

// Check evaluates the compose version, engine reachability and allocated
// resources. All three run even when an earlier one fails, so the user gets
// every diagnostic in one pass.
func (h *HostCheck) Check(ctx context.Context, multiNode bool) error {
	var result *multierror.Error
	if err := h.ComposeVersion(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := h.Engine(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := h.Resources(ctx, multiNode); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// ComposeVersion verifies that the docker compose plugin is installed and at
// or above MinComposeVersion.
func (h *HostCheck) ComposeVersion(ctx context.Context) error {
	out, err := h.run(ctx, "docker", "compose", "version", "--short")
	if err != nil {
		return fmt.Errorf("docker compose is not installed or not runnable: %v", err)
	}
	raw := strings.TrimSpace(string(out))
	version, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return fmt.Errorf("unable to parse docker compose version %q: %v", raw, err)
	}
	min := semver.MustParse(MinComposeVersion)
	if version.LessThan(min) {
		return fmt.Errorf(
			"docker compose %s is too old, at least %s is required",
			version, min,
		)
	}
	log.Debugf("docker compose version %s is supported", version)
	return nil
}

// Engine verifies that the docker daemon is reachable and responding.
func (h *HostCheck) Engine(ctx context.Context) error {
	if _, err := h.client.Ping(ctx); err != nil {
		return fmt.Errorf("the docker daemon is not running: %v", err)
	}
	return nil
}

// Resources verifies that the engine's allocated CPUs and memory meet the
// minimum for the chosen mode. Multi-node runs seven containers more and
// needs the larger memory floor.
func (h *HostCheck) Resources(ctx context.Context, multiNode bool) error {
	info, err := h.client.Info(ctx)
	if err != nil {
		return fmt.Errorf("unable to read docker engine info: %v", err)
	}

	var result *multierror.Error
	if info.NCPU < minCPUs {
		result = multierror.Append(result, fmt.Errorf(
			"docker has %d CPUs allocated, the network needs at least %d",
			info.NCPU, minCPUs,
		))
	}
	minMemory := minMemorySingleNode
	if multiNode {
		minMemory = minMemoryMultiNode
	}
	if info.MemTotal < minMemory {
		result = multierror.Append(result, fmt.Errorf(
			"docker has %s of memory allocated, the network needs at least %s",
			units.BytesSize(float64(info.MemTotal)),
			units.BytesSize(float64(minMemory)),
		))
	}
	return result.ErrorOrNil()
}
