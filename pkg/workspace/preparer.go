// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package workspace materializes the on-disk working directory every
// container of the network reads from, and exports resolved configuration
// into the process environment so child processes inherit it.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aurumledger/localnet/pkg/catalog"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// skeletonDirs are created under the working directory before any copy runs.
var skeletonDirs = []string{
	filepath.Join("network-logs", "node"),
	"records",
	"services",
}

// generatedPaths is everything bring-up may have written under the working
// directory. Cleanup removes exactly these, never the directory itself.
var generatedPaths = []string{
	"network-logs",
	"network-node",
	"mirror-node",
	"records",
	"services",
}

// CopyPair maps a source path under the asset directory to a destination
// path under the working directory.
type CopyPair struct {
	Src string
	Dst string
}

// DefaultCopyPairs are the three artifacts every run needs: the consensus
// node's config directory, the mirror node's application config template and
// the record parser service sources.
func DefaultCopyPairs() []CopyPair {
	return []CopyPair{
		{
			Src: filepath.Join("compose-network", "network-node", "config"),
			Dst: filepath.Join("network-node", "config"),
		},
		{
			Src: filepath.Join("compose-network", "mirror-node", "application.yml"),
			Dst: filepath.Join("mirror-node", "application.yml"),
		},
		{
			Src: filepath.Join("services", "record-parser"),
			Dst: filepath.Join("services", "record-parser"),
		},
	}
}

// Environment variables that force the relay's rate limiting off. They are
// appended after the catalog entries, so they win regardless of what the
// catalog says for the same keys.
var rateLimitOverrides = []catalog.KV{
	{Name: "RELAY_RATE_LIMIT_DISABLED", Value: "true"},
	{Name: "RELAY_RATE_LIMIT_TINYBAR", Value: "0"},
	{Name: "RELAY_RATE_LIMIT_DUTY_CYCLE", Value: "0"},
}

// Preparer owns working-directory file materialization and environment
// export for one run.
type Preparer struct {
	fs       afero.Fs
	assetDir string
	workDir  string
	setenv   func(key, value string) error
}

func NewPreparer(fs afero.Fs, assetDir, workDir string) *Preparer {
	return &Preparer{
		fs:       fs,
		assetDir: assetDir,
		workDir:  workDir,
		setenv:   os.Setenv,
	}
}

// WithSetenv swaps the environment export function. Tests use this to
// capture exports instead of mutating the real process environment.
func (p *Preparer) WithSetenv(setenv func(key, value string) error) *Preparer {
	p.setenv = setenv
	return p
}

// WorkDir returns the run's working directory root.
func (p *Preparer) WorkDir() string {
	return p.workDir
}

// MirrorConfigPath is where the copied mirror application config lives.
func (p *Preparer) MirrorConfigPath() string {
	return filepath.Join(p.workDir, "mirror-node", "application.yml")
}

// BootstrapPropertiesPath is where the consensus node's bootstrap properties
// file is written.
func (p *Preparer) BootstrapPropertiesPath() string {
	return filepath.Join(p.workDir, "network-node", "config", "bootstrap.properties")
}

// CreateSkeleton creates the expected directory layout under the working
// directory.
func (p *Preparer) CreateSkeleton() error {
	for _, dir := range skeletonDirs {
		path := filepath.Join(p.workDir, dir)
		if err := p.fs.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}

// CopyPaths copies each pair from the asset directory into the working
// directory. A missing source is a fatal setup error: it means the tool's
// distribution is incomplete, not that the host is misconfigured.
func (p *Preparer) CopyPaths(pairs []CopyPair) error {
	for _, pair := range pairs {
		src := filepath.Join(p.assetDir, pair.Src)
		dst := filepath.Join(p.workDir, pair.Dst)

		info, err := p.fs.Stat(src)
		if err != nil {
			return fmt.Errorf("required source %s is missing: %w", src, err)
		}
		if info.IsDir() {
			err = p.copyDir(src, dst)
		} else {
			err = p.copyFile(src, dst)
		}
		if err != nil {
			return fmt.Errorf("copying %s to %s: %w", src, dst, err)
		}
		log.Debugf("copied %s to %s", src, dst)
	}
	return nil
}

func (p *Preparer) copyDir(src, dst string) error {
	return afero.Walk(p.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return p.fs.MkdirAll(target, 0755)
		}
		return p.copyFile(path, target)
	})
}

func (p *Preparer) copyFile(src, dst string) error {
	content, err := afero.ReadFile(p.fs, src)
	if err != nil {
		return err
	}
	if err := p.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return afero.WriteFile(p.fs, dst, content, 0644)
}

// PathOverrides returns the working-directory-relative paths the containers
// need. They are appended after the catalog's environment entries so they
// take precedence in the last-writer-wins export.
func (p *Preparer) PathOverrides() []catalog.KV {
	return []catalog.KV{
		{Name: "NETWORK_NODE_LOGS_ROOT_PATH", Value: filepath.Join(p.workDir, "network-logs", "node")},
		{Name: "APPLICATION_CONFIG_PATH", Value: filepath.Join(p.workDir, "network-node", "config")},
		{Name: "MIRROR_NODE_CONFIG_PATH", Value: filepath.Join(p.workDir, "mirror-node")},
		{Name: "RECORD_PARSER_ROOT_PATH", Value: filepath.Join(p.workDir, "services", "record-parser")},
	}
}

// ExportEnv sets every entry in order as a process environment variable.
// With disableRateLimits the relay's three rate-limit variables are forced
// to their disabling values after everything else, catalog content
// notwithstanding.
func (p *Preparer) ExportEnv(entries []catalog.KV, disableRateLimits bool) error {
	if disableRateLimits {
		entries = append(append([]catalog.KV{}, entries...), rateLimitOverrides...)
	}
	for _, kv := range entries {
		if err := p.setenv(kv.Name, kv.Value); err != nil {
			return fmt.Errorf("exporting %s: %w", kv.Name, err)
		}
		log.Debugf("exported %s=%s", kv.Name, kv.Value)
	}
	return nil
}

// Setenv exports a single variable through the same path as ExportEnv.
func (p *Preparer) Setenv(key, value string) error {
	return p.setenv(key, value)
}

// RemoveGenerated deletes every artifact a previous run may have produced
// under the working directory.
func (p *Preparer) RemoveGenerated() error {
	for _, rel := range generatedPaths {
		path := filepath.Join(p.workDir, rel)
		if err := p.fs.RemoveAll(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}
