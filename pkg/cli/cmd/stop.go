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
	"github.com/aurumledger/localnet/pkg/config"
	"github.com/aurumledger/localnet/pkg/docker"
	"github.com/aurumledger/localnet/pkg/lifecycle"
	"github.com/aurumledger/localnet/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewStopCommand(fs afero.Fs) *cobra.Command {
	flags := &runFlags{}
	command := &cobra.Command{
		Use:   "stop",
		Short: "Stop the local network and remove its generated state.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := resolveRunOptions(cmd, fs, flags)
			if err != nil {
				return err
			}
			err = lifecycle.NewController(
				stopSequence(fs, opts)...,
			).Run(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("The network is stopped.")
			return nil
		},
	}
	registerRunFlags(command, flags)
	return command
}

// stopSequence tears the containers down first, then removes what bring-up
// generated. No rollback semantics: each state is a plain forward step.
func stopSequence(fs afero.Fs, opts config.RunOptions) []lifecycle.State {
	prep := workspace.NewPreparer(fs, opts.AssetDir, opts.WorkDir)
	return []lifecycle.State{
		lifecycle.NewStopState(docker.NewCompose(opts.AssetDir, opts.MultiNode, nil)),
		lifecycle.NewCleanupState(prep),
	}
}
