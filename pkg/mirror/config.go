// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package mirror rewrites the mirror node's application.yml in place. Only
// the handful of sections this tool owns are touched; the rest of the
// document keeps its structure. The touched sections are expressed as typed
// values and spliced into the loaded yaml tree by a thin adapter, so the
// mutations are compile-time checked while the document stays open-ended.
package mirror

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options gates each mutation independently. Flags may compound.
type Options struct {
	// Turbo switches the importer to the local record stream instead of a
	// remote bucket. Active when full mode is off.
	Turbo bool
	// Debug keeps downloaded stream files on disk for inspection.
	Debug bool
	// MultiNode points the monitor at all four consensus nodes.
	MultiNode bool
}

// Source is one importer downloader source entry.
type Source struct {
	Type string `yaml:"type"`
	URI  string `yaml:"uri,omitempty"`
}

// LocalDownloader is the importer's downloader.local section.
type LocalDownloader struct {
	Enabled   bool `yaml:"enabled"`
	KeepFiles bool `yaml:"keepFiles"`
}

// MonitorNode is one entry of the monitor's node list.
type MonitorNode struct {
	AccountID string `yaml:"accountId"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
}

const turboDataPath = "/var/mirror/stream"

var turboSources = []Source{
	{Type: "local", URI: "file:///var/mirror/stream"},
}

var debugLocalDownloader = LocalDownloader{
	Enabled:   true,
	KeepFiles: true,
}

var multiNodeMonitors = []MonitorNode{
	{AccountID: "0.0.3", Host: "network-node", Port: 50211},
	{AccountID: "0.0.4", Host: "network-node-1", Port: 50211},
	{AccountID: "0.0.5", Host: "network-node-2", Port: 50211},
	{AccountID: "0.0.6", Host: "network-node-3", Port: 50211},
}

// RelayNetworkEnv is the relay's node-endpoint map variable, exported only in
// multi-node mode.
const RelayNetworkEnv = "RELAY_NETWORK"

// MultiNodeRelayNetwork returns the relay mapping of the four fixed node
// endpoints to their shard.realm.account identifiers. Built from the ordered
// monitor list so the output is deterministic.
func MultiNodeRelayNetwork() string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range multiNodeMonitors {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%q:%q", fmt.Sprintf("%s:%d", n.Host, n.Port), n.AccountID)
	}
	b.WriteString("}")
	return b.String()
}

// Apply loads the application config document, rewrites the sections selected
// by opts, and serializes it back with a two-space indent. Unselected and
// unrelated sections come through unchanged.
func Apply(doc []byte, opts Options) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("parsing mirror application config: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("mirror application config is empty")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("mirror application config root is not a mapping")
	}

	if opts.Turbo {
		if err := setPath(top, turboDataPath, "mirror", "importer", "dataPath"); err != nil {
			return nil, err
		}
		if err := setPath(top, turboSources, "mirror", "importer", "downloader", "sources"); err != nil {
			return nil, err
		}
	}
	if opts.Debug {
		if err := setPath(top, debugLocalDownloader, "mirror", "importer", "downloader", "local"); err != nil {
			return nil, err
		}
	}
	if opts.MultiNode {
		if err := setPath(top, multiNodeMonitors, "mirror", "monitor", "nodes"); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("encoding mirror application config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setPath replaces the value at the given mapping path with the yaml
// rendering of v, creating intermediate mappings when absent.
func setPath(top *yaml.Node, v interface{}, path ...string) error {
	parent := top
	for _, key := range path[:len(path)-1] {
		child := mapValue(parent, key)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			parent.Content = append(parent.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("config key %q is not a mapping", key)
		}
		parent = child
	}

	value := &yaml.Node{}
	if err := value.Encode(v); err != nil {
		return fmt.Errorf("encoding override for %s: %w", strings.Join(path, "."), err)
	}

	leaf := path[len(path)-1]
	if existing := mapValue(parent, leaf); existing != nil {
		*existing = *value
		return nil
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: leaf},
		value,
	)
	return nil
}

// mapValue returns the value node for key within a mapping node, or nil.
func mapValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
