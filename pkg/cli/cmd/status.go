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
	"strings"

	"github.com/aurumledger/localnet/pkg/cli/ui"
	"github.com/aurumledger/localnet/pkg/docker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the network's containers.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := docker.NewDockerClient()
			if err != nil {
				return docker.WrapIfConnErr(err)
			}
			defer c.Close()

			statuses, err := docker.NetworkContainers(cmd.Context(), c)
			if err != nil {
				return docker.WrapIfConnErr(err)
			}
			if len(statuses) == 0 {
				log.Info("No network containers found. Run 'localnet start' to bring the network up.")
				return nil
			}
			renderContainerStatuses(statuses)
			return nil
		},
	}
	return command
}

func renderContainerStatuses(statuses []docker.ContainerStatus) {
	t := ui.NewTable(log.StandardLogger().Out)
	t.SetColWidth(80)
	t.SetAutoWrapText(true)
	t.SetHeader([]string{"Container", "State", "Ports"})
	for _, s := range statuses {
		t.Append([]string{s.Name, s.State, strings.Join(s.Ports, ", ")})
	}

	t.Render()
}
