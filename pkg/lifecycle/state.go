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

	"github.com/aurumledger/localnet/pkg/catalog"
	lnet "github.com/aurumledger/localnet/pkg/net"
)

// State is one unit of orchestration work. Run performs the state's whole
// phase and returns its single terminal event; a state is activated at most
// once per run. Returning more than once is impossible by construction,
// which is the point of returning the event instead of signaling it through
// a callback.
type State interface {
	Name() string
	Run(ctx context.Context) Event
}

// Catalog resolves a network kind to its configuration entry.
type Catalog interface {
	ForNetwork(kind catalog.Kind) (catalog.Entry, error)
}

// HostChecker validates the container engine: compose tooling version,
// daemon reachability and allocated resources.
type HostChecker interface {
	Check(ctx context.Context, multiNode bool) error
}

// PortScanner probes the network's necessary and optional ports.
type PortScanner interface {
	Scan(ctx context.Context) lnet.Report
}

// ComposeRunner starts and stops the network's service containers.
type ComposeRunner interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}
