// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package lifecycle sequences the discrete phases of network bring-up and
// teardown. Each phase is a State that runs exactly once and reports exactly
// one terminal event; the Controller advances through its ordered states
// until one fails or none remain.
package lifecycle

// Event is a state's terminal signal. The set is closed: a state either
// completed its phase or hit a condition no later state could repair.
type Event int

const (
	// Finish means the phase fully completed and the next state may start.
	Finish Event = iota
	// UnresolvableError means the run must stop. No rollback is attempted;
	// a later clean run is the recovery path.
	UnresolvableError
)

func (e Event) String() string {
	switch e {
	case Finish:
		return "finish"
	case UnresolvableError:
		return "unresolvable error"
	}
	return "unknown"
}
