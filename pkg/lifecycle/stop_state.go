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

// StopState tears the service containers down, including their volumes and
// any orphans a previous tool version left behind.
type StopState struct {
	compose ComposeRunner
}

func NewStopState(compose ComposeRunner) *StopState {
	return &StopState{compose: compose}
}

func (s *StopState) Name() string {
	return "stop"
}

func (s *StopState) Run(ctx context.Context) Event {
	log.Info("stopping the network services")
	if err := s.compose.Down(ctx); err != nil {
		log.Error(err)
		return UnresolvableError
	}
	return Finish
}
