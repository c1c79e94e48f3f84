// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package cmd

import (
	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/aurumledger/localnet/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// defaultReadyRetries bounds the network-ready wait: 30 probes, 2s apart.
const defaultReadyRetries = 30

// runFlags holds the raw command line values shared by the start, stop and
// restart commands.
type runFlags struct {
	network    string
	workDir    string
	assetDir   string
	host       string
	multiNode  bool
	fullMode   bool
	debug      bool
	rateLimits bool
	retries    uint
}

func registerRunFlags(command *cobra.Command, flags *runFlags) {
	defaults := config.Default()
	command.Flags().StringVarP(
		&flags.network,
		"network",
		"n",
		string(defaults.Network),
		"The network configuration to run (local, testnet, previewnet, mainnet)",
	)
	command.Flags().StringVarP(
		&flags.workDir,
		"workdir",
		"w",
		defaults.WorkDir,
		"Where generated configuration and logs are kept",
	)
	command.Flags().StringVar(
		&flags.assetDir,
		"asset-dir",
		defaults.AssetDir,
		"The directory holding the compose files and configuration templates",
	)
	command.Flags().StringVar(
		&flags.host,
		"host",
		defaults.Host,
		"The host the network's ports are expected on",
	)
	command.Flags().BoolVar(
		&flags.multiNode,
		"multinode",
		defaults.MultiNode,
		"Run four consensus nodes instead of one",
	)
	command.Flags().BoolVar(
		&flags.fullMode,
		"full",
		defaults.FullMode,
		"Run the full record-stream pipeline instead of the turbo shortcut",
	)
	command.Flags().BoolVar(
		&flags.debug,
		"enable-debug",
		defaults.Debug,
		"Keep downloaded mirror stream files for inspection",
	)
	command.Flags().BoolVar(
		&flags.rateLimits,
		"rate-limits",
		defaults.RateLimits,
		"Leave the relay's rate limiting enabled",
	)
	command.Flags().UintVar(
		&flags.retries,
		"retries",
		defaultReadyRetries,
		"The amount of times to check for the network before"+
			" considering it unstable and exiting.",
	)
}

// resolveRunOptions layers the three configuration sources: defaults, then
// the settings file in the working directory, then any flag the user
// explicitly set.
func resolveRunOptions(
	command *cobra.Command, fs afero.Fs, flags *runFlags,
) (config.RunOptions, error) {
	opts := config.Default()
	set := command.Flags()

	// The working directory flag has to apply first: it decides where the
	// settings file is looked up.
	if set.Changed("workdir") {
		opts.WorkDir = flags.workDir
	}
	settings, err := config.LoadSettings(fs, opts.WorkDir)
	if err != nil {
		return config.RunOptions{}, err
	}
	opts = opts.Apply(settings)

	if set.Changed("network") {
		opts.Network = catalog.Kind(flags.network)
	}
	if set.Changed("asset-dir") {
		opts.AssetDir = flags.assetDir
	}
	if set.Changed("host") {
		opts.Host = flags.host
	}
	if set.Changed("multinode") {
		opts.MultiNode = flags.multiNode
	}
	if set.Changed("full") {
		opts.FullMode = flags.fullMode
	}
	if set.Changed("enable-debug") {
		opts.Debug = flags.debug
	}
	if set.Changed("rate-limits") {
		opts.RateLimits = flags.rateLimits
	}
	return opts, nil
}
