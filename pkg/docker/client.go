// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package docker is the container engine collaborator: a narrow client over
// the Docker SDK, host readiness checks and a docker-compose runner.
package docker

import (
	"context"
	"errors"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	log "github.com/sirupsen/logrus"
)

// Client defines the subset of Docker's *client.Client that this tool uses,
// to make it possible to test the code that uses it.
type Client interface {
	Close() error

	Ping(ctx context.Context) (types.Ping, error)

	Info(ctx context.Context) (types.Info, error)

	ContainerList(
		ctx context.Context,
		options types.ContainerListOptions,
	) ([]types.Container, error)

	ContainerInspect(
		ctx context.Context,
		containerID string,
	) (types.ContainerJSON, error)

	IsErrConnectionFailed(err error) bool
}

type dockerClient struct {
	*client.Client
}

func NewDockerClient() (Client, error) {
	c, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, err
	}
	return &dockerClient{c}, nil
}

func (*dockerClient) IsErrConnectionFailed(err error) bool {
	return client.IsErrConnectionFailed(err)
}

func WrapIfConnErr(err error) error {
	if client.IsErrConnectionFailed(err) {
		msg := `Couldn't connect to docker.
This can happen for a couple of reasons:
- The Docker daemon isn't running.
- You are running 'localnet' as a user that can't execute Docker commands.
- You haven't installed Docker. Please follow the instructions at https://docs.docker.com/engine/install/ to install it and then try again.
`
		log.Debug(err)
		return errors.New(msg)
	}
	return err
}
