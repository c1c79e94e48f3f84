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
	"os"

	"github.com/aurumledger/localnet/pkg/cli"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func Execute() {
	verbose := false
	fs := afero.NewOsFs()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	log.SetFormatter(cli.NewLogFormatter())
	log.SetOutput(os.Stdout)

	cobra.OnInitialize(func() {
		// This is only executed when a subcommand (e.g. localnet start) is
		// specified.
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	})

	rootCmd := &cobra.Command{
		Use:   "localnet",
		Short: "localnet runs a local ledger network in containers",
		Long:  "",
	}
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose",
		"v", false, "enable verbose logging (default false)")

	rootCmd.AddCommand(NewStartCommand(fs))
	rootCmd.AddCommand(NewStopCommand(fs))
	rootCmd.AddCommand(NewRestartCommand(fs))
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewVersionCommand())

	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
