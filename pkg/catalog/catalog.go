// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package catalog holds the static, per-network configuration table: image
// tags, environment variables and consensus node property overrides for each
// supported network. The table is read-only after load.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed networks.yaml
var networksYAML []byte

// Kind identifies a supported network configuration.
type Kind string

const (
	Local      Kind = "local"
	Testnet    Kind = "testnet"
	Previewnet Kind = "previewnet"
	Mainnet    Kind = "mainnet"
)

// KV is a single ordered key/value entry. Order matters: later entries win
// when the same key appears twice in a merged list.
type KV struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Entry is the configuration data for one network. EnvVars and NodeProperties
// may be empty, meaning the network carries no overrides for them.
type Entry struct {
	ImageTags      []KV `yaml:"imageTags"`
	EnvVars        []KV `yaml:"envVars"`
	NodeProperties []KV `yaml:"nodeProperties"`
}

// Catalog maps network kinds to their configuration entries.
type Catalog struct {
	entries map[Kind]Entry
}

// Load parses the embedded network table. It panics on a malformed embedded
// file since that is a build defect, not a runtime condition.
func Load() *Catalog {
	c, err := parse(networksYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded network catalog is invalid: %v", err))
	}
	return c
}

func parse(data []byte) (*Catalog, error) {
	entries := map[Kind]Entry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Catalog{entries: entries}, nil
}

// ForNetwork returns the configuration entry for the given network kind, or
// an error if the kind is not in the table.
func (c *Catalog) ForNetwork(kind Kind) (Entry, error) {
	entry, ok := c.entries[kind]
	if !ok {
		return Entry{}, fmt.Errorf("unrecognized network %q (supported: %v)", kind, c.Kinds())
	}
	return entry, nil
}

// Kinds returns the supported network kinds, sorted for stable output.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
