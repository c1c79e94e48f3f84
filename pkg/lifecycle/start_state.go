// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package lifecycle

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// StartState brings the service containers up. The compose child process
// inherits the environment InitState exported, which is how the resolved
// image tags and configuration reach the containers.
type StartState struct {
	compose ComposeRunner
}

func NewStartState(compose ComposeRunner) *StartState {
	return &StartState{compose: compose}
}

func (s *StartState) Name() string {
	return "start"
}

func (s *StartState) Run(ctx context.Context) Event {
	log.Info("starting the network services")
	if err := s.compose.Up(ctx); err != nil {
		log.Error(err)
		return UnresolvableError
	}
	return Finish
}
