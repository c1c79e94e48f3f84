// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package net

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// NecessaryPorts must be free before bring-up may proceed. A conflict on any
// of them is fatal.
var NecessaryPorts = []int{5551, 5600, 5433, 8082, 8545, 50211}

// OptionalPorts back auxiliary services. A conflict only degrades those
// services, so it is reported but does not block bring-up.
var OptionalPorts = []int{3000, 6379, 7546, 8080}

type Severity byte

const (
	Fatal Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "Fatal"
	case Warning:
		return "Warning"
	}
	panic("wrong port check severity")
}

// PortStatus is the scan outcome for a single port.
type PortStatus struct {
	Port     int
	InUse    bool
	Severity Severity
}

// Report collects the outcome of scanning the necessary and optional port
// sets.
type Report struct {
	Statuses []PortStatus
}

// Conflicts returns the ports whose conflict blocks bring-up.
func (r Report) Conflicts() []PortStatus {
	return r.filter(Fatal)
}

// Advisories returns the optional ports that are in use.
func (r Report) Advisories() []PortStatus {
	return r.filter(Warning)
}

func (r Report) filter(severity Severity) []PortStatus {
	var out []PortStatus
	for _, st := range r.Statuses {
		if st.InUse && st.Severity == severity {
			out = append(out, st)
		}
	}
	return out
}

// Dialer is the probe used to decide whether a port is taken. Injected so
// tests don't need real sockets.
type Dialer func(network, addr string, timeout time.Duration) (net.Conn, error)

const dialTimeout = 500 * time.Millisecond

// Scanner probes host ports for availability.
type Scanner struct {
	Host string
	Dial Dialer
}

func NewScanner(host string) *Scanner {
	return &Scanner{Host: host, Dial: net.DialTimeout}
}

// Scan probes the union of the necessary and optional port sets concurrently
// and returns a report sorted by port number. A port that accepts a
// connection is in use.
func (s *Scanner) Scan(ctx context.Context) Report {
	type probe struct {
		port     int
		severity Severity
	}
	var probes []probe
	for _, p := range NecessaryPorts {
		probes = append(probes, probe{p, Fatal})
	}
	for _, p := range OptionalPorts {
		probes = append(probes, probe{p, Warning})
	}

	mu := sync.Mutex{}
	statuses := make([]PortStatus, 0, len(probes))

	grp, _ := errgroup.WithContext(ctx)
	for _, pr := range probes {
		pr := pr
		grp.Go(func() error {
			addr := fmt.Sprintf("%s:%d", s.Host, pr.port)
			conn, err := s.Dial("tcp", addr, dialTimeout)
			inUse := err == nil
			if conn != nil {
				conn.Close()
			}
			mu.Lock()
			statuses = append(statuses, PortStatus{
				Port:     pr.port,
				InUse:    inUse,
				Severity: pr.severity,
			})
			mu.Unlock()
			return nil
		})
	}
	// Probes never return errors, a failed dial just means the port is free.
	_ = grp.Wait()

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Port < statuses[j].Port })
	return Report{Statuses: statuses}
}
