// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package config resolves the user's intent for a run: defaults, an optional
// settings file in the working directory, and command line flags layered on
// top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional per-working-directory settings file name.
const SettingsFile = "localnet.yaml"

// RunOptions is the resolved user intent for one run. It is immutable once
// the lifecycle starts: the controller owns it and hands it to each state by
// value.
type RunOptions struct {
	// Network selects the configuration catalog entry.
	Network catalog.Kind
	// WorkDir is where generated configuration and logs are materialized.
	WorkDir string
	// AssetDir is the tool's distribution directory holding the compose
	// files and configuration templates.
	AssetDir string
	// Host is where the network's ports are expected to be reachable.
	Host string
	// MultiNode starts four consensus nodes instead of one.
	MultiNode bool
	// FullMode disables the turbo record-stream shortcuts.
	FullMode bool
	// Debug keeps downloaded mirror stream files for inspection.
	Debug bool
	// RateLimits leaves the relay's rate limiting enabled.
	RateLimits bool
}

// Default returns the options used when neither the settings file nor flags
// say otherwise.
func Default() RunOptions {
	home, _ := os.UserHomeDir()
	return RunOptions{
		Network:    catalog.Local,
		WorkDir:    filepath.Join(home, ".localnet"),
		AssetDir:   ".",
		Host:       "127.0.0.1",
		MultiNode:  false,
		FullMode:   false,
		Debug:      false,
		RateLimits: true,
	}
}

// Settings mirrors the optional localnet.yaml file. Pointer fields
// distinguish "absent" from an explicit false.
type Settings struct {
	Network    string `yaml:"network"`
	Host       string `yaml:"host"`
	MultiNode  *bool  `yaml:"multiNode"`
	FullMode   *bool  `yaml:"fullMode"`
	Debug      *bool  `yaml:"debug"`
	RateLimits *bool  `yaml:"rateLimits"`
}

// LoadSettings reads the settings file from the working directory. A missing
// file is not an error, it just contributes nothing.
func LoadSettings(fs afero.Fs, workDir string) (Settings, error) {
	path := filepath.Join(workDir, SettingsFile)
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(content, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Apply overlays the settings onto the options, leaving absent fields alone.
func (o RunOptions) Apply(s Settings) RunOptions {
	if s.Network != "" {
		o.Network = catalog.Kind(s.Network)
	}
	if s.Host != "" {
		o.Host = s.Host
	}
	if s.MultiNode != nil {
		o.MultiNode = *s.MultiNode
	}
	if s.FullMode != nil {
		o.FullMode = *s.FullMode
	}
	if s.Debug != nil {
		o.Debug = *s.Debug
	}
	if s.RateLimits != nil {
		o.RateLimits = *s.RateLimits
	}
	return o
}
