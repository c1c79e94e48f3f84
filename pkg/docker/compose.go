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

	log "github.com/sirupsen/logrus"
)

const (
	composeFile          = "docker-compose.yml"
	composeMultiNodeFile = "docker-compose.multinode.yml"
)

// Compose drives docker compose for the network's service definitions. The
// child process inherits this process' environment, which is how the
// exported image tags and configuration overrides reach the containers.
type Compose struct {
	// Dir holds the compose files.
	Dir string
	// MultiNode adds the multi-node overlay file.
	MultiNode bool

	run CommandRunner
}

func NewCompose(dir string, multiNode bool, run CommandRunner) *Compose {
	if run == nil {
		run = ExecCommandRunner
	}
	return &Compose{Dir: dir, MultiNode: multiNode, run: run}
}

func (c *Compose) files() []string {
	files := []string{composeFile}
	if c.MultiNode {
		files = append(files, composeMultiNodeFile)
	}
	return files
}

func (c *Compose) exec(ctx context.Context, action ...string) error {
	args := []string{"compose"}
	for _, f := range c.files() {
		args = append(args, "-f", fmt.Sprintf("%s/%s", c.Dir, f))
	}
	args = append(args, action...)

	log.Debugf("running docker %v", args)
	out, err := c.run(ctx, "docker", args...)
	if len(out) > 0 {
		log.Debug(string(out))
	}
	if err != nil {
		return fmt.Errorf("docker compose %s failed: %v", action[0], err)
	}
	return nil
}

// Up starts every service in detached mode.
func (c *Compose) Up(ctx context.Context) error {
	return c.exec(ctx, "up", "-d")
}

// Down stops the services and removes their containers, volumes and any
// orphans left behind by earlier runs.
func (c *Compose) Down(ctx context.Context) error {
	return c.exec(ctx, "down", "-v", "--remove-orphans")
}
