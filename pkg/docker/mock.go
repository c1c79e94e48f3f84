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

	"github.com/docker/docker/api/types"
)

// MockClient implements Client through overridable function fields.
type MockClient struct {
	MockClose func() error

	MockPing func(ctx context.Context) (types.Ping, error)

	MockInfo func(ctx context.Context) (types.Info, error)

	MockContainerList func(
		ctx context.Context,
		options types.ContainerListOptions,
	) ([]types.Container, error)

	MockContainerInspect func(
		ctx context.Context,
		containerID string,
	) (types.ContainerJSON, error)

	MockIsErrConnectionFailed func(err error) bool
}

func (c *MockClient) Close() error {
	if c.MockClose != nil {
		return c.MockClose()
	}
	return nil
}

func (c *MockClient) Ping(ctx context.Context) (types.Ping, error) {
	if c.MockPing != nil {
		return c.MockPing(ctx)
	}
	return types.Ping{APIVersion: "1.41"}, nil
}

func (c *MockClient) Info(ctx context.Context) (types.Info, error) {
	if c.MockInfo != nil {
		return c.MockInfo(ctx)
	}
	return types.Info{NCPU: 8, MemTotal: 16 * 1024 * 1024 * 1024}, nil
}

func (c *MockClient) ContainerList(
	ctx context.Context, options types.ContainerListOptions,
) ([]types.Container, error) {
	if c.MockContainerList != nil {
		return c.MockContainerList(ctx, options)
	}
	return []types.Container{}, nil
}

func (c *MockClient) ContainerInspect(
	ctx context.Context, containerID string,
) (types.ContainerJSON, error) {
	if c.MockContainerInspect != nil {
		return c.MockContainerInspect(ctx, containerID)
	}
	return types.ContainerJSON{}, nil
}

func (c *MockClient) IsErrConnectionFailed(err error) bool {
	if c.MockIsErrConnectionFailed != nil {
		return c.MockIsErrConnectionFailed(err)
	}
	return false
}
