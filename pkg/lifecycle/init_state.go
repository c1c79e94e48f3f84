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
	"github.com/aurumledger/localnet/pkg/config"
	"github.com/aurumledger/localnet/pkg/mirror"
	"github.com/aurumledger/localnet/pkg/properties"
	"github.com/aurumledger/localnet/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// InitState validates that the host can run the network, then materializes
// every artifact the containers need: the working directory tree, the
// process environment, the consensus node's bootstrap properties and the
// mirror node's application config.
//
// Ordering matters: nothing on disk or in the environment is touched until
// the catalog lookup, the host checks and the necessary-port scan have all
// passed, so a failed run leaves the host exactly as it found it.
type InitState struct {
	opts    config.RunOptions
	catalog Catalog
	checker HostChecker
	scanner PortScanner
	prep    *workspace.Preparer
	fs      afero.Fs
}

func NewInitState(
	opts config.RunOptions,
	cat Catalog,
	checker HostChecker,
	scanner PortScanner,
	prep *workspace.Preparer,
	fs afero.Fs,
) *InitState {
	return &InitState{
		opts:    opts,
		catalog: cat,
		checker: checker,
		scanner: scanner,
		prep:    prep,
		fs:      fs,
	}
}

func (s *InitState) Name() string {
	return "init"
}

func (s *InitState) Run(ctx context.Context) Event {
	entry, err := s.catalog.ForNetwork(s.opts.Network)
	if err != nil {
		return s.fail(err)
	}

	if err := s.checker.Check(ctx, s.opts.MultiNode); err != nil {
		return s.fail(err)
	}

	report := s.scanner.Scan(ctx)
	for _, advisory := range report.Advisories() {
		log.Warnf(
			"port %d is in use, the auxiliary service behind it won't be reachable",
			advisory.Port,
		)
	}
	if conflicts := report.Conflicts(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			log.Errorf("necessary port %d is already in use", conflict.Port)
		}
		log.Error("free the ports above and start again")
		return UnresolvableError
	}

	if err := s.prep.CreateSkeleton(); err != nil {
		return s.fail(err)
	}
	if err := s.prep.CopyPaths(workspace.DefaultCopyPairs()); err != nil {
		return s.fail(err)
	}

	// The path overrides go last so they win over catalog defaults.
	env := append([]catalog.KV{}, entry.ImageTags...)
	env = append(env, entry.EnvVars...)
	env = append(env, s.prep.PathOverrides()...)
	if err := s.prep.ExportEnv(env, !s.opts.RateLimits); err != nil {
		return s.fail(err)
	}

	merged := properties.Merge(properties.Base(), entry.NodeProperties)
	if err := properties.Write(s.fs, s.prep.BootstrapPropertiesPath(), merged); err != nil {
		return s.fail(err)
	}

	if err := s.rewriteMirrorConfig(); err != nil {
		return s.fail(err)
	}

	if s.opts.MultiNode {
		if err := s.prep.Setenv(mirror.RelayNetworkEnv, mirror.MultiNodeRelayNetwork()); err != nil {
			return s.fail(err)
		}
	}

	log.Infof("working directory %s is ready", s.prep.WorkDir())
	return Finish
}

func (s *InitState) rewriteMirrorConfig() error {
	path := s.prep.MirrorConfigPath()
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return err
	}
	mutated, err := mirror.Apply(content, mirror.Options{
		Turbo:     !s.opts.FullMode,
		Debug:     s.opts.Debug,
		MultiNode: s.opts.MultiNode,
	})
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, path, mutated, 0644)
}

func (s *InitState) fail(err error) Event {
	log.Error(err)
	return UnresolvableError
}
