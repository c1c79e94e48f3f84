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
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedState struct {
	name  string
	event Event
	runs  int
}

func (s *scriptedState) Name() string { return s.name }

func (s *scriptedState) Run(_ context.Context) Event {
	s.runs++
	return s.event
}

func TestControllerRun(t *testing.T) {
	tests := []struct {
		name           string
		states         []*scriptedState
		expectedErrMsg string
		expectedRuns   []int
	}{
		{
			name: "it should run every state exactly once when all finish",
			states: []*scriptedState{
				{name: "init", event: Finish},
				{name: "start", event: Finish},
				{name: "network-ready", event: Finish},
			},
			expectedRuns: []int{1, 1, 1},
		},
		{
			name: "it should stop on an unresolvable error without running later states",
			states: []*scriptedState{
				{name: "init", event: Finish},
				{name: "start", event: UnresolvableError},
				{name: "network-ready", event: Finish},
			},
			expectedErrMsg: "state 'start' stopped the run with an unresolvable error",
			expectedRuns:   []int{1, 1, 0},
		},
		{
			name: "it should halt immediately when the first state fails",
			states: []*scriptedState{
				{name: "init", event: UnresolvableError},
				{name: "start", event: Finish},
			},
			expectedErrMsg: "state 'init' stopped the run with an unresolvable error",
			expectedRuns:   []int{1, 0},
		},
		{
			name:         "it should succeed with no states",
			states:       nil,
			expectedRuns: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := make([]State, 0, len(tt.states))
			for _, st := range tt.states {
				states = append(states, st)
			}

			err := NewController(states...).Run(context.Background())

			if tt.expectedErrMsg != "" {
				require.EqualError(t, err, tt.expectedErrMsg)
			} else {
				require.NoError(t, err)
			}
			for i, st := range tt.states {
				require.Equal(t, tt.expectedRuns[i], st.runs,
					"state %s run count", st.name)
			}
		})
	}
}

func TestControllerRejectsUnknownEvent(t *testing.T) {
	bad := &scriptedState{name: "weird", event: Event(42)}

	err := NewController(bad).Run(context.Background())

	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected event")
}
