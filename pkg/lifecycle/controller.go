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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Controller owns an ordered list of states and advances through them one at
// a time. Exactly one state is active at any moment; the next state starts
// only after the previous one returned Finish. On any other event the
// controller stops without running the remaining states and without rolling
// back what earlier states already applied.
type Controller struct {
	states []State
}

func NewController(states ...State) *Controller {
	return &Controller{states: states}
}

// Run executes the sequence. It returns nil when every state finished, or an
// error naming the state that stopped the run.
func (c *Controller) Run(ctx context.Context) error {
	for _, state := range c.states {
		log.Debugf("starting state '%s'", state.Name())
		event := state.Run(ctx)
		switch event {
		case Finish:
			log.Debugf("state '%s' finished", state.Name())
		case UnresolvableError:
			return fmt.Errorf("state '%s' stopped the run with an unresolvable error", state.Name())
		default:
			return fmt.Errorf("state '%s' emitted unexpected event %q", state.Name(), event)
		}
	}
	return nil
}
