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
	"github.com/aurumledger/localnet/pkg/docker"
	"github.com/aurumledger/localnet/pkg/lifecycle"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewRestartCommand(fs afero.Fs) *cobra.Command {
	flags := &runFlags{}
	command := &cobra.Command{
		Use:   "restart",
		Short: "Stop the local network and bring it up again from scratch.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := resolveRunOptions(cmd, fs, flags)
			if err != nil {
				return err
			}
			c, err := docker.NewDockerClient()
			if err != nil {
				return docker.WrapIfConnErr(err)
			}
			defer c.Close()

			// The stop sequence runs to completion before the start sequence
			// begins; a failure in either halts the whole restart.
			states := stopSequence(fs, opts)
			states = append(states, startSequence(c, fs, opts, flags.retries)...)
			err = lifecycle.NewController(states...).Run(cmd.Context())
			if err != nil {
				return err
			}

			log.Info("The network is up. These are its endpoints:\n")
			renderEndpoints(opts.Host)
			return nil
		},
	}
	registerRunFlags(command, flags)
	return command
}
