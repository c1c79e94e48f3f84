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
	"fmt"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/aurumledger/localnet/pkg/cli/ui"
	"github.com/aurumledger/localnet/pkg/config"
	"github.com/aurumledger/localnet/pkg/docker"
	"github.com/aurumledger/localnet/pkg/lifecycle"
	lnet "github.com/aurumledger/localnet/pkg/net"
	"github.com/aurumledger/localnet/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewStartCommand(fs afero.Fs) *cobra.Command {
	flags := &runFlags{}
	command := &cobra.Command{
		Use:   "start",
		Short: "Start the local network.",
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

			err = lifecycle.NewController(
				startSequence(c, fs, opts, flags.retries)...,
			).Run(cmd.Context())
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

// startSequence is the bring-up order: validate and materialize, start the
// containers, wait until the core services answer.
func startSequence(
	c docker.Client, fs afero.Fs, opts config.RunOptions, retries uint,
) []lifecycle.State {
	prep := workspace.NewPreparer(fs, opts.AssetDir, opts.WorkDir)
	return []lifecycle.State{
		lifecycle.NewInitState(
			opts,
			catalog.Load(),
			docker.NewHostCheck(c, nil),
			lnet.NewScanner(opts.Host),
			prep,
			fs,
		),
		lifecycle.NewStartState(docker.NewCompose(opts.AssetDir, opts.MultiNode, nil)),
		lifecycle.NewNetworkReadyState(opts.Host, retries),
	}
}

type endpoint struct {
	name string
	addr string
}

func networkEndpoints(host string) []endpoint {
	return []endpoint{
		{"consensus node", fmt.Sprintf("%s:50211", host)},
		{"mirror node grpc", fmt.Sprintf("%s:5551", host)},
		{"mirror node rest", fmt.Sprintf("http://%s:5600", host)},
		{"mirror web3 api", fmt.Sprintf("http://%s:8082", host)},
		{"json-rpc relay", fmt.Sprintf("http://%s:8545", host)},
		{"relay websocket", fmt.Sprintf("ws://%s:7546", host)},
		{"block explorer", fmt.Sprintf("http://%s:8080", host)},
	}
}

func renderEndpoints(host string) {
	t := ui.NewTable(log.StandardLogger().Out)
	t.SetColWidth(80)
	t.SetAutoWrapText(true)
	t.SetHeader([]string{"Service", "Endpoint"})
	for _, e := range networkEndpoints(host) {
		t.Append([]string{e.name, e.addr})
	}

	t.Render()
}
