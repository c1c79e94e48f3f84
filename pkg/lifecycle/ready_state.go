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
	"net"
	"time"

	"github.com/avast/retry-go"
	lnet "github.com/aurumledger/localnet/pkg/net"
	log "github.com/sirupsen/logrus"
)

// Endpoint is one service the network isn't usable without.
type Endpoint struct {
	Name string
	Port int
}

// The services a caller interacts with first. All three listen on necessary
// ports, so a conflict was already ruled out during init.
var defaultEndpoints = []Endpoint{
	{Name: "consensus node", Port: 50211},
	{Name: "mirror node", Port: 5551},
	{Name: "rpc relay", Port: 8545},
}

const (
	readyDialTimeout = 2 * time.Second
	readyRetryDelay  = 2 * time.Second
)

// NetworkReadyState waits until every core service accepts connections.
// Polling a collaborator that is still coming up is the one place waiting is
// allowed; a service that never binds its port within the attempt budget
// stops the run.
type NetworkReadyState struct {
	host      string
	retries   uint
	dial      lnet.Dialer
	endpoints []Endpoint
}

func NewNetworkReadyState(host string, retries uint) *NetworkReadyState {
	return &NetworkReadyState{
		host:      host,
		retries:   retries,
		dial:      net.DialTimeout,
		endpoints: defaultEndpoints,
	}
}

func (s *NetworkReadyState) Name() string {
	return "network-ready"
}

func (s *NetworkReadyState) Run(ctx context.Context) Event {
	log.Info("waiting for the network to be ready...")
	for _, endpoint := range s.endpoints {
		if err := s.await(endpoint); err != nil {
			log.Errorf("the %s never became reachable: %v", endpoint.Name, err)
			return UnresolvableError
		}
		log.Debugf("the %s is up", endpoint.Name)
	}
	return Finish
}

func (s *NetworkReadyState) await(endpoint Endpoint) error {
	addr := fmt.Sprintf("%s:%d", s.host, endpoint.Port)
	return retry.Do(
		func() error {
			conn, err := s.dial("tcp", addr, readyDialTimeout)
			if err != nil {
				return err
			}
			conn.Close()
			return nil
		},
		retry.Attempts(s.retries),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(readyRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debugf("the %s isn't up yet: %v", endpoint.Name, err)
			log.Debugf("retrying (%d retries left)", s.retries-n)
		}),
	)
}
